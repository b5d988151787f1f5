// Package pomodoro models the work/break cycle of a Pomodoro timer.
//
// A Session only changes state when told to: Tick advances it by a duration
// and the caller owns the clock. This keeps the cycle logic testable and
// lets the CLI drive it from a time.Ticker.
package pomodoro

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Mode is the kind of the current phase.
type Mode string

const (
	Work  Mode = "work"
	Break Mode = "break"
)

// Settings configures a cycle. Durations are in whole minutes.
type Settings struct {
	WorkMinutes      int `json:"work_minutes" toml:"work_minutes" yaml:"work_minutes" validate:"min=1,max=240"`
	BreakMinutes     int `json:"break_minutes" toml:"break_minutes" yaml:"break_minutes" validate:"min=1,max=240"`
	LongBreakMinutes int `json:"long_break_minutes" toml:"long_break_minutes" yaml:"long_break_minutes" validate:"min=1,max=240"`
	LongBreakEvery   int `json:"long_break_every" toml:"long_break_every" yaml:"long_break_every" validate:"min=1,max=24"`
}

// DefaultSettings is the classic 25/5/15 cycle with a long break every
// fourth pomodoro.
func DefaultSettings() Settings {
	return Settings{WorkMinutes: 25, BreakMinutes: 5, LongBreakMinutes: 15, LongBreakEvery: 4}
}

// ErrInvalidSettings is returned for settings outside their validate bounds.
var ErrInvalidSettings = errors.New("invalid pomodoro settings")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the bounds in the validate tags.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Phase is one work or break interval.
type Phase struct {
	Mode      Mode          `json:"mode"`
	Long      bool          `json:"long,omitempty"`
	Duration  time.Duration `json:"-"`
	Minutes   int           `json:"minutes"`
	Completed int           `json:"completed"` // pomodoros finished before this phase starts
}

// After returns the phase that follows one of mode, given the number of
// pomodoros completed so far (including a just-finished work phase).
func (s Settings) After(mode Mode, completed int) Phase {
	if mode == Work {
		if completed > 0 && completed%s.LongBreakEvery == 0 {
			return s.phase(Break, true, completed)
		}
		return s.phase(Break, false, completed)
	}
	return s.phase(Work, false, completed)
}

// Plan lists the next n phases starting from a fresh work phase.
func (s Settings) Plan(n int) []Phase {
	if n <= 0 {
		return nil
	}
	out := make([]Phase, 0, n)
	p := s.phase(Work, false, 0)
	for len(out) < n {
		out = append(out, p)
		done := p.Completed
		if p.Mode == Work {
			done++
		}
		p = s.After(p.Mode, done)
	}
	return out
}

func (s Settings) phase(mode Mode, long bool, completed int) Phase {
	minutes := s.WorkMinutes
	switch {
	case mode == Break && long:
		minutes = s.LongBreakMinutes
	case mode == Break:
		minutes = s.BreakMinutes
	}
	return Phase{
		Mode:      mode,
		Long:      long,
		Duration:  time.Duration(minutes) * time.Minute,
		Minutes:   minutes,
		Completed: completed,
	}
}

// Session is a running cycle. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	settings  Settings
	phase     Phase
	remaining time.Duration
	running   bool
}

// NewSession starts a session paused at the beginning of a work phase.
func NewSession(s Settings) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	sess := &Session{settings: s}
	sess.reset()
	return sess, nil
}

// Status is a snapshot of a session.
type Status struct {
	Mode      Mode          `json:"mode"`
	Long      bool          `json:"long,omitempty"`
	Remaining time.Duration `json:"-"`
	Clock     string        `json:"clock"`
	Completed int           `json:"completed"`
	Running   bool          `json:"running"`
	Progress  float64       `json:"progress"` // percent of the phase remaining
}

// Status returns the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() Status {
	progress := 0.0
	if s.phase.Duration > 0 {
		progress = float64(s.remaining) / float64(s.phase.Duration) * 100
	}
	return Status{
		Mode:      s.phase.Mode,
		Long:      s.phase.Long,
		Remaining: s.remaining,
		Clock:     FormatClock(s.remaining),
		Completed: s.phase.Completed,
		Running:   s.running,
		Progress:  progress,
	}
}

// Toggle starts a paused session or pauses a running one and reports whether
// it is now running.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = !s.running
	return s.running
}

// Reset returns to a paused work phase with no completed pomodoros.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.phase = s.settings.phase(Work, false, 0)
	s.remaining = s.phase.Duration
	s.running = false
}

// Tick advances a running session by d. When the phase runs out the session
// moves to the next phase, pauses, and Tick returns that phase. Time left
// over past the end of a phase is discarded.
func (s *Session) Tick(d time.Duration) (*Phase, error) {
	if d < 0 {
		return nil, fmt.Errorf("negative tick %v", d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil, nil
	}
	s.remaining -= d
	if s.remaining > 0 {
		return nil, nil
	}
	next := s.complete()
	return &next, nil
}

// Skip ends the current phase immediately and returns the next one.
func (s *Session) Skip() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete()
}

func (s *Session) complete() Phase {
	done := s.phase.Completed
	if s.phase.Mode == Work {
		done++
	}
	s.phase = s.settings.After(s.phase.Mode, done)
	s.remaining = s.phase.Duration
	s.running = false
	return s.phase
}

// FormatClock renders d as MM:SS, rounding partial seconds up.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
