// Package practice runs a timed, self-graded attempt at a question set.
package practice

import (
	"errors"
	"fmt"
	"time"

	"quizform/internal/question"
	"quizform/internal/quizerr"
)

// Budget bounds, in minutes.
const (
	MinMinutes     = 1
	MaxMinutes     = 120
	DefaultMinutes = 10
)

// State is the lifecycle position of a session.
type State int

const (
	// Active accepts answers until the budget runs out or the user submits.
	Active State = iota
	// Ended is terminal; the score is frozen.
	Ended
)

func (s State) String() string {
	if s == Ended {
		return "ended"
	}
	return "active"
}

// EndReason records why a session left Active.
type EndReason string

const (
	// ReasonNone is the reason of a session that is still active.
	ReasonNone EndReason = ""
	// ReasonTimeExpired ends a session when the budget is used up.
	ReasonTimeExpired EndReason = "time expired"
	// ReasonSubmitted ends a session at the user's request.
	ReasonSubmitted EndReason = "submitted"
)

// ErrEnded is returned by operations attempted after the session ended.
var ErrEnded = errors.New("practice session has ended")

// Result is the frozen outcome of an ended session.
type Result struct {
	Reason     EndReason
	Answers    []string
	Correct    []bool
	Score      int
	Total      int
	Unanswered int
	StartedAt  time.Time
	EndedAt    time.Time
}

// Elapsed is the wall time between start and end.
func (r Result) Elapsed() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Budget converts a minute count into a time budget.
func Budget(minutes int) (time.Duration, error) {
	if minutes < MinMinutes || minutes > MaxMinutes {
		return 0, quizerr.Inputf("practice budget", "minutes must be between %d and %d, got %d", MinMinutes, MaxMinutes, minutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}

// Tick reports how much of budget is left after elapsed and whether it is
// used up. Remaining never goes below zero.
func Tick(budget, elapsed time.Duration) (time.Duration, bool) {
	remaining := budget - elapsed
	if remaining <= 0 {
		return 0, true
	}
	return remaining, false
}

// Session tracks answers against a soft time budget. The timer is only
// checked when an operation passes the current time in.
type Session struct {
	set       question.Set
	budget    time.Duration
	startedAt time.Time
	answers   []string
	state     State
	result    Result
}

// Start opens an Active session with one empty answer slot per question.
func Start(set question.Set, budget time.Duration, now time.Time) (*Session, error) {
	if set.Len() == 0 {
		return nil, quizerr.Inputf("start practice", "question set is empty")
	}
	if budget < MinMinutes*time.Minute || budget > MaxMinutes*time.Minute {
		return nil, quizerr.Inputf("start practice", "budget must be between %d and %d minutes, got %s", MinMinutes, MaxMinutes, budget)
	}
	return &Session{
		set:       set,
		budget:    budget,
		startedAt: now,
		answers:   make([]string, set.Len()),
		state:     Active,
	}, nil
}

// Set returns the question set being practised.
func (s *Session) Set() question.Set {
	return s.set
}

// Budget returns the configured time budget.
func (s *Session) Budget() time.Duration {
	return s.budget
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Answers returns a copy of the answer slots.
func (s *Session) Answers() []string {
	return append([]string(nil), s.answers...)
}

// Poll recomputes the remaining time and ends the session when it has run
// out. It returns the remaining time and whether the session is Ended.
func (s *Session) Poll(now time.Time) (time.Duration, bool) {
	if s.state == Ended {
		return 0, true
	}
	remaining, expired := Tick(s.budget, now.Sub(s.startedAt))
	if expired {
		s.end(ReasonTimeExpired, now)
		return 0, true
	}
	return remaining, false
}

// Present returns question i for display. When the budget is used up the
// session ends and the question is withheld.
func (s *Session) Present(i int, now time.Time) (question.Question, error) {
	if err := s.checkIndex(i); err != nil {
		return question.Question{}, err
	}
	if _, ended := s.Poll(now); ended {
		return question.Question{}, ErrEnded
	}
	return s.set.Questions[i], nil
}

// Answer stores value in slot i while the session is Active.
func (s *Session) Answer(i int, value string, now time.Time) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if _, ended := s.Poll(now); ended {
		return ErrEnded
	}
	s.answers[i] = value
	return nil
}

// Submit ends an Active session. Submitting an ended session returns the
// existing result unchanged.
func (s *Session) Submit(now time.Time) Result {
	if _, ended := s.Poll(now); !ended {
		s.end(ReasonSubmitted, now)
	}
	return s.result
}

// Result returns the frozen result and whether the session has ended.
func (s *Session) Result() (Result, bool) {
	if s.state != Ended {
		return Result{}, false
	}
	return s.result, true
}

func (s *Session) end(reason EndReason, now time.Time) {
	if s.state == Ended {
		return
	}
	grade := question.GradeAnswers(s.set, s.answers)
	s.state = Ended
	s.result = Result{
		Reason:     reason,
		Answers:    append([]string(nil), s.answers...),
		Correct:    grade.Correct,
		Score:      grade.Score,
		Total:      grade.Total,
		Unanswered: grade.Unanswered,
		StartedAt:  s.startedAt,
		EndedAt:    now,
	}
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.answers) {
		return fmt.Errorf("question index %d out of range [0,%d)", i, len(s.answers))
	}
	return nil
}
