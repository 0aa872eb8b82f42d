// Package session holds the live input snapshot of one open tool and
// recomputes its result synchronously after every edit.
//
// A session is owned by a single caller and is not safe for concurrent use.
package session

import (
	"github.com/google/uuid"

	"github.com/medcalc/medcalc/pkg/scoring"
)

// ScoreSession is an open score protocol: its current field values and the
// result computed from them.
type ScoreSession struct {
	id     string
	engine *scoring.Engine
	def    scoring.Definition
	values scoring.Values
	result *scoring.Result
}

// Open starts a session on protocolID with an empty snapshot. The initial
// result reflects the defaulting policy (often a pending tier).
func Open(r *scoring.Registry, protocolID string) (*ScoreSession, error) {
	s := &ScoreSession{engine: scoring.NewEngine(r)}
	if err := s.Switch(protocolID); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session id. It changes whenever the protocol is switched.
func (s *ScoreSession) ID() string { return s.id }

// Protocol returns the id of the open protocol.
func (s *ScoreSession) Protocol() string { return s.def.ID }

// Definition returns the schema of the open protocol.
func (s *ScoreSession) Definition() scoring.Definition { return s.def }

// Result returns the result of the last accepted snapshot.
func (s *ScoreSession) Result() *scoring.Result { return s.result }

// Snapshot returns a copy of the current field values.
func (s *ScoreSession) Snapshot() scoring.Values { return s.values.Clone() }

// Set stores value for field and recomputes. A rejected value leaves the
// snapshot and the last result untouched.
func (s *ScoreSession) Set(field string, value any) (*scoring.Result, error) {
	return s.Apply(scoring.Values{field: value})
}

// Apply stores several field values at once and recomputes. Either every
// value is accepted or none is.
func (s *ScoreSession) Apply(values scoring.Values) (*scoring.Result, error) {
	next := s.values.Clone()
	for k, v := range values {
		next[k] = v
	}
	return s.commit(next)
}

// Clear resets field to unanswered and recomputes.
func (s *ScoreSession) Clear(field string) (*scoring.Result, error) {
	if _, ok := s.def.Field(field); !ok {
		return nil, &scoring.InputValidationError{Protocol: s.def.ID, Field: field, Reason: "field is not defined by this protocol"}
	}
	next := s.values.Clone()
	delete(next, field)
	return s.commit(next)
}

// Switch discards the current snapshot and opens protocolID. On error the
// session keeps its current protocol.
func (s *ScoreSession) Switch(protocolID string) error {
	def, err := s.engine.Registry().Definition(protocolID)
	if err != nil {
		return err
	}
	result, err := s.engine.Evaluate(protocolID, nil)
	if err != nil {
		return err
	}
	s.id = uuid.NewString()
	s.def = def
	s.values = scoring.Values{}
	s.result = result
	return nil
}

func (s *ScoreSession) commit(next scoring.Values) (*scoring.Result, error) {
	result, err := s.engine.Evaluate(s.def.ID, next)
	if err != nil {
		return nil, err
	}
	s.values = next
	s.result = result
	return result, nil
}
