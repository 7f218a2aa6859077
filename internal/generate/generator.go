// Package generate turns extracted document text into a question set.
package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizform/internal/llm"
	"quizform/internal/question"
	"quizform/internal/quizerr"
	"quizform/internal/verbose"
)

// Bounds on the number of questions requested per run.
const (
	MinCount = 1
	MaxCount = 50
)

// Request describes one generation run.
type Request struct {
	Text   string
	Count  int
	Style  question.Style
	Source string
}

// CountMismatch records a reply whose size differs from the request.
type CountMismatch struct {
	Requested int
	Returned  int
}

// Truncated reports whether surplus questions were dropped.
func (m CountMismatch) Truncated() bool {
	return m.Returned > m.Requested
}

// String renders a warning line for the mismatch.
func (m CountMismatch) String() string {
	if m.Truncated() {
		return fmt.Sprintf("model returned %d questions, kept the first %d", m.Returned, m.Requested)
	}
	return fmt.Sprintf("model returned %d of %d requested questions", m.Returned, m.Requested)
}

// Result is a generated set plus any count mismatch.
type Result struct {
	Set      question.Set
	Mismatch *CountMismatch
}

// Generator builds prompts, calls the provider once, and parses the reply.
type Generator struct {
	Provider llm.Provider
	Timeout  time.Duration
	Log      *verbose.Logger
}

// Generate runs one generation. Provider failures are ErrUpstream, malformed
// or invalid replies are ErrParse. Nothing is retried.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	const op = "generate"
	if g == nil || g.Provider == nil {
		return Result{}, fmt.Errorf("%s: provider is required", op)
	}
	if req.Count < MinCount || req.Count > MaxCount {
		return Result{}, quizerr.Inputf(op, "question count must be between %d and %d, got %d", MinCount, MaxCount, req.Count)
	}
	style, err := question.ParseStyle(string(req.Style))
	if err != nil {
		return Result{}, quizerr.Input(op, err)
	}

	prompt := BuildPrompt(style, req.Count, req.Text)
	g.Log.Block(fmt.Sprintf("LLM prompt (%s, %d questions)", style, req.Count), prompt)

	callCtx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}
	started := time.Now()
	raw, err := g.Provider.Generate(callCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", g.Timeout, err)
		}
		return Result{}, quizerr.Upstream(op, err)
	}
	g.Log.Block(fmt.Sprintf("LLM output (%s)", time.Since(started).Round(time.Millisecond)), raw)

	return ParseResponse(raw, req.Count, style, req.Source)
}

// ParseResponse strips code fences, decodes, reconciles the count, and
// validates the set. Surplus questions are truncated to requested; a
// shortfall is accepted and reported.
func ParseResponse(raw string, requested int, style question.Style, source string) (Result, error) {
	const op = "parse response"
	items, err := decodeQuestions(StripCodeFence(raw))
	if err != nil {
		return Result{}, quizerr.Parse(op, err)
	}

	var mismatch *CountMismatch
	if requested > 0 && len(items) != requested {
		mismatch = &CountMismatch{Requested: requested, Returned: len(items)}
		if len(items) > requested {
			items = items[:requested]
		}
	}

	set, err := question.NormalizeSet(question.Set{
		Version:   question.CurrentVersion,
		Style:     style,
		Source:    source,
		Questions: items,
	})
	if err != nil {
		return Result{}, quizerr.Parse(op, err)
	}
	return Result{Set: set, Mismatch: mismatch}, nil
}
