package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quizform/internal/config"
	"quizform/internal/forms"
	"quizform/internal/llm"
	"quizform/internal/quizerr"
	"quizform/internal/resultsdb"
	"quizform/internal/session"
	"quizform/internal/verbose"
)

// resultsTimeout bounds opening and writing the results database.
const resultsTimeout = 30 * time.Second

// Test seams for external services and the clock.
var (
	now         = time.Now
	newProvider = func(settings llm.Settings) (llm.Provider, error) {
		return llm.New(settings, http.DefaultClient)
	}
	newFormsService = func(ctx context.Context, credentialsFile string) (forms.Service, error) {
		return forms.NewGoogleService(ctx, credentialsFile)
	}
)

// commonFlags are accepted by every command that reads the workspace.
type commonFlags struct {
	configPath *string
	verbose    *bool
	logPath    *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to config file (default: search for .quizform/config.yml)"),
		verbose:    fs.Bool("verbose", false, "Print prompts, raw responses, and service calls"),
		logPath:    fs.String("log", "", "Also write verbose output to this file"),
	}
}

// parseFlags parses args and reports the exit code to use when parsing
// stops the command.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// workspace is the loaded configuration plus the stores it points at.
type workspace struct {
	root     string
	cfg      config.Config
	secrets  config.Secrets
	sessions *session.Store
	log      *verbose.Logger
	closeLog func()
}

// loadWorkspace finds and validates the config, loads .env, and opens the
// verbose logger.
func loadWorkspace(flags commonFlags, stdout io.Writer) (*workspace, error) {
	configPath, err := resolveConfigPath(*flags.configPath)
	if err != nil {
		return nil, err
	}
	root := config.RootFromConfigPath(configPath)
	if err := config.LoadEnv(root); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	ws := &workspace{
		root:     root,
		cfg:      cfg,
		secrets:  config.ResolveSecrets(cfg, root, os.Getenv),
		sessions: session.NewStore(config.ConfigDir(root)),
		closeLog: func() {},
	}
	var logFile io.Writer
	if path := strings.TrimSpace(*flags.logPath); path != "" {
		if !*flags.verbose {
			return nil, quizerr.Inputf("log", "--log requires --verbose")
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = file
		ws.closeLog = func() { _ = file.Close() }
	}
	ws.log = verbose.New(*flags.verbose, stdout, logFile)
	ws.log.Printf("config: %s", configPath)
	return ws, nil
}

func (ws *workspace) Close() {
	if ws != nil && ws.closeLog != nil {
		ws.closeLog()
	}
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

func (ws *workspace) formsTimeout() time.Duration {
	return time.Duration(ws.cfg.Forms.TimeoutSeconds) * time.Second
}

// formsService builds the Google Forms client from the configured
// credentials.
func (ws *workspace) formsService(ctx context.Context) (forms.Service, error) {
	if ws.secrets.CredentialsFile == "" {
		return nil, quizerr.Inputf("forms client", "no service-account credentials; set forms.credentials_file or %s", forms.CredentialsEnv)
	}
	ws.log.Printf("forms: credentials %s", ws.secrets.CredentialsFile)
	svc, err := newFormsService(ctx, ws.secrets.CredentialsFile)
	if err != nil {
		return nil, quizerr.Upstream("forms client", err)
	}
	return svc, nil
}

// withResults opens the results database when enabled and runs fn. The
// write gets its own deadline, independent of any remote calls before it.
func (ws *workspace) withResults(fn func(context.Context, *resultsdb.Store) error) error {
	if !ws.cfg.Results.Enabled {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), resultsTimeout)
	defer cancel()
	path := config.ResolvePath(ws.root, ws.cfg.Results.DBPath)
	ws.log.Printf("results: %s", path)
	store, err := resultsdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}

// reportFailure prints a failed action and a hint for the error kind.
func reportFailure(stderr io.Writer, action string, err error) int {
	fmt.Fprintf(stderr, "%s failed: %v\n", action, err)
	switch quizerr.KindOf(err) {
	case quizerr.ErrUpstream:
		fmt.Fprintln(stderr, "The remote service call failed; check credentials and try again.")
	case quizerr.ErrParse:
		fmt.Fprintln(stderr, "The model reply could not be used; try again or lower --count.")
	}
	return ExitError
}
