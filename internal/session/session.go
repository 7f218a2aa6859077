// Package session keeps the current question set and its published form
// between command invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"quizform/internal/forms"
	"quizform/internal/question"
	"quizform/internal/quizerr"
)

// FileName is the context file inside the workspace directory.
const FileName = "session.json"

// ErrNoSession reports that no question set has been generated yet.
var ErrNoSession = errors.New("no questions generated yet; run `quizform generate` first")

// Context is the state shared by publish, responses, and practice.
type Context struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Set       question.Set     `json:"set"`
	Form      *forms.Published `json:"form,omitempty"`
}

// HasForm reports whether the set has been published.
func (c Context) HasForm() bool {
	return c.Form != nil && c.Form.FormID != ""
}

// Store persists a single Context as JSON under a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the context file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Create starts a new context for set, replacing any previous one
// including its form handle.
func (s *Store) Create(set question.Set, now time.Time) (Context, error) {
	if set.Len() == 0 {
		return Context{}, quizerr.Inputf("create session", "question set is empty")
	}
	ctx := Context{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC(),
		Set:       set,
	}
	if err := s.save(ctx); err != nil {
		return Context{}, err
	}
	return ctx, nil
}

// Load reads the current context. It returns ErrNoSession when none exists.
func (s *Store) Load() (Context, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return Context{}, quizerr.Input("load session", ErrNoSession)
		}
		return Context{}, fmt.Errorf("read session: %w", err)
	}
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return Context{}, fmt.Errorf("parse session %s: %w", s.Path(), err)
	}
	if _, err := uuid.Parse(ctx.ID); err != nil {
		return Context{}, fmt.Errorf("parse session %s: invalid id: %w", s.Path(), err)
	}
	set, err := question.NormalizeSet(ctx.Set)
	if err != nil {
		return Context{}, fmt.Errorf("session %s: %w", s.Path(), err)
	}
	ctx.Set = set
	return ctx, nil
}

// AttachForm records the published form on the current context. The
// context must be the one currently stored.
func (s *Store) AttachForm(ctx Context, form forms.Published) (Context, error) {
	current, err := s.Load()
	if err != nil {
		return Context{}, err
	}
	if current.ID != ctx.ID {
		return Context{}, fmt.Errorf("session %s was replaced by %s", ctx.ID, current.ID)
	}
	current.Form = &form
	if err := s.save(current); err != nil {
		return Context{}, err
	}
	return current, nil
}

// Invalidate removes the current context. Missing contexts are ignored.
func (s *Store) Invalidate() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// save writes the context using an atomic rename.
func (s *Store) save(ctx Context) error {
	payload, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("write session: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
