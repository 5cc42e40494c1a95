// file: internal/resolver/session.go

package resolver

import (
	"errors"

	"create-next-app/internal/cli"
	"create-next-app/internal/logger"
)

// State is the position of a prompt session.
type State int

const (
	// Prompting means a question is outstanding.
	Prompting State = iota
	// Answered means the last question received a value.
	Answered
	// Aborted is terminal: no further questions are asked.
	Aborted
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Answered:
		return "answered"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Transition records one state change of a session.
type Transition struct {
	Field string
	State State
	Value interface{}
}

// session asks one question at a time and stops for good once aborted.
type session struct {
	prompter cli.Prompter
	logger   *logger.Logger
	state    State
	history  []Transition
}

func newSession(p cli.Prompter, log *logger.Logger) *session {
	return &session{prompter: p, logger: log, state: Answered}
}

func (s *session) enter(field string, state State, value interface{}) {
	s.state = state
	s.history = append(s.history, Transition{Field: field, State: state, Value: value})
	s.logger.Debug("prompt state", "field", field, "state", state.String(), "value", value)
}

func (s *session) fail(field string, err error) error {
	s.enter(field, Aborted, nil)
	if errors.Is(err, cli.ErrAborted) {
		return ErrAborted
	}
	return err
}

func (s *session) toggle(field, question string, initial bool) (bool, error) {
	if s.state == Aborted {
		return false, ErrAborted
	}
	s.enter(field, Prompting, initial)
	v, err := s.prompter.Toggle(question, initial)
	if err != nil {
		return false, s.fail(field, err)
	}
	s.enter(field, Answered, v)
	return v, nil
}

func (s *session) text(field, question, initial string, validate func(string) error) (string, error) {
	if s.state == Aborted {
		return "", ErrAborted
	}
	s.enter(field, Prompting, initial)
	v, err := s.prompter.Text(question, initial, validate)
	if err != nil {
		return "", s.fail(field, err)
	}
	s.enter(field, Answered, v)
	return v, nil
}
