package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"quizform/internal/config"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Where to write the config (default: .quizform/config.yml in the repo root or CWD)")
		yes := fs.Bool("yes", false, "Accept every default without prompting")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		var targetPath, repoRoot string
		if value := strings.TrimSpace(*configPath); value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = abs
			repoRoot = discoverGitRoot(config.RootFromConfigPath(abs))
		} else {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			repoRoot = discoverGitRoot(wd)
			base := repoRoot
			if base == "" {
				base = wd
			}
			targetPath = config.ConfigPath(base)
		}
		configDir := filepath.Dir(targetPath)

		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		resultsDB := config.DefaultResultsDBPath
		addGitignore := repoRoot != ""
		if !*yes {
			in := initInput
			if in == nil {
				in = os.Stdin
			}
			ask := newPrompter(in, stdout)
			confirm, err := ask.YesNo(fmt.Sprintf("Initialize quizform config in %s?", configDir), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
			resultsDB, err = ask.String("Results database", resultsDB)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if repoRoot != "" {
				addGitignore, err = ask.YesNo("Add .quizform/ and .env to .gitignore?", true)
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
			}
		}

		written, err := config.Scaffold(targetPath, resultsDB)
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		if addGitignore {
			envPath := filepath.Join(config.RootFromConfigPath(targetPath), config.EnvFileName)
			added, err := ignoreInRepo(repoRoot, configDir, envPath)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if len(added) > 0 {
				fmt.Fprintf(stdout, "Updated %s (%s)\n", filepath.Join(repoRoot, ".gitignore"), strings.Join(added, ", "))
			}
		}
		fmt.Fprintf(stdout, "Next: put your API key in %s, then run `quizform generate --file <doc>`.\n", config.EnvFileName)
		return ExitOK
	}
}

// discoverGitRoot walks up from startDir to the first directory holding
// .git. It returns "" outside a repository.
func discoverGitRoot(startDir string) string {
	dir := filepath.Clean(startDir)
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
