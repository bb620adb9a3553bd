// Package session implements Session, the stateful front-end-facing
// object that turns the pure parser/evaluator pipeline into the
// concrete eval/eval_lines/clear/get_totals/get_variables/reload_rates
// API.
package session

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nasedkinpv/numr"
	"github.com/nasedkinpv/numr/internal/eval"
	"github.com/nasedkinpv/numr/internal/obs"
	"github.com/nasedkinpv/numr/internal/parser"
	"github.com/nasedkinpv/numr/internal/ratecache"
	"github.com/nasedkinpv/numr/internal/totals"
)

// Outcome is what evaluating one line produces: a Value with its
// display string, a non-fatal empty result (comment/blank line), or a
// typed error.
type Outcome struct {
	Empty   bool
	Display string
	Value   numr.Value
	Err     *eval.Error
}

// Session holds one document's environment, previous-result register,
// and a read-only pointer to the current rate-cache snapshot. One
// Session is evaluated by one caller at a time, matching spec.md §5.
type Session struct {
	ID    string
	env   eval.Env
	prev  *numr.Value
	rates *ratecache.Graph
	log   *logrus.Entry

	history []numr.Value // ordered results feeding get_totals
}

// New creates a Session with an empty environment, logging under a
// fresh correlation ID for this document.
func New() *Session {
	id := uuid.NewString()
	return &Session{
		ID:  id,
		env: eval.Env{},
		log: obs.SessionLogger(id),
	}
}

// SetRates installs a rate-cache snapshot. It is the Session's only
// mutation point for rates — eval/eval_lines never fetch.
func (s *Session) SetRates(g *ratecache.Graph) { s.rates = g }

// Eval parses and evaluates one line against the session's current
// state, updating env (on successful assignment) and prev (on any
// value-producing line).
func (s *Session) Eval(line string) Outcome {
	stmt, err := parser.ParseLine(line)
	if err != nil {
		s.log.WithError(err).Debug("parse error")
		perr := &eval.Error{Kind: eval.ParseError, Message: err.Error()}
		if pe, ok := err.(*parser.Error); ok {
			perr.Span = pe.Span
		}
		return Outcome{Err: perr}
	}

	result, newPrev, everr := eval.Eval(stmt, s.env, s.prev, s.rateConverter())
	if everr != nil {
		s.log.WithField("kind", everr.Kind.String()).Debug("eval error")
		return Outcome{Err: everr}
	}
	s.prev = newPrev
	if !result.HasValue {
		return Outcome{Empty: true}
	}
	s.history = append(s.history, result.Value)
	return Outcome{Display: result.Value.String(), Value: result.Value}
}

// EvalLines evaluates a whole document, line by line, each line seeing
// the prior lines' env and prev-result.
func (s *Session) EvalLines(lines []string) []Outcome {
	out := make([]Outcome, len(lines))
	for i, line := range lines {
		out[i] = s.Eval(line)
	}
	return out
}

// Clear wipes the environment, previous-result register, and totals
// history, starting the document over.
func (s *Session) Clear() {
	s.env = eval.Env{}
	s.prev = nil
	s.history = nil
}

// GetTotals returns the current document's grouped sums.
func (s *Session) GetTotals() []totals.Group {
	return totals.Totals(s.history, s.rateConverter())
}

// Variable is one (name, Value) pair from the environment snapshot.
type Variable struct {
	Name  string
	Value numr.Value
}

// GetVariables returns the current environment snapshot.
func (s *Session) GetVariables() []Variable {
	vars := make([]Variable, 0, len(s.env))
	for name, v := range s.env {
		vars = append(vars, Variable{Name: name, Value: v})
	}
	return vars
}

// ReloadRates re-reads the rate-cache document at path and atomically
// swaps the session's snapshot pointer.
func (s *Session) ReloadRates(path string) error {
	g, err := ratecache.Load(path)
	if err != nil {
		s.log.WithError(err).Warn("reload_rates failed")
		return err
	}
	s.rates = g
	s.log.WithField("edges", len(g.Edges())).Info("rates reloaded")
	return nil
}

func (s *Session) rateConverter() numr.RateConverter {
	if s.rates == nil {
		return nil
	}
	return s.rates
}
