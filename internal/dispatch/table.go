// Package dispatch maps each line typed at the prompt to an action through an
// ordered rule table. The most recently registered matching rule wins.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// ErrNoRule means no rule matched an input. A table with the catch-all rule
// installed never returns it, so it signals a broken table.
var ErrNoRule = errors.New("no rule matches input")

// Origin records where a rule came from.
type Origin string

const (
	Builtin Origin = "builtin"
	Custom  Origin = "custom"
)

// Result tells the session what a dispatched action did.
type Result struct {
	// Command is the command line handed to the runner, if any.
	Command string
	// Exit ends the session.
	Exit bool
	// Reload asks the session to rebuild the table from configuration.
	Reload bool
}

// Action performs a rule's effect.
type Action func(ctx context.Context, env *Env, m Match) (Result, error)

// Rule is one entry of the table. A nil Systems means every system.
type Rule struct {
	Pattern Pattern
	Systems []string
	Action  Action
	Origin  Origin
}

// Eligible reports whether the rule applies under system.
func (r Rule) Eligible(system string) bool {
	return r.Systems == nil || slices.Contains(r.Systems, system)
}

// Table is an ordered rule collection. Rules are stored in registration order
// and walked from the end, which puts the latest registration first.
type Table struct {
	rules  []Rule
	logger *zap.Logger
}

// NewTable returns an empty table.
func NewTable(logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{logger: logger}
}

// Register adds a built-in rule with the highest priority.
func (t *Table) Register(p Pattern, systems []string, action Action) {
	t.Add(Rule{Pattern: p, Systems: systems, Action: action, Origin: Builtin})
}

// Add inserts r with the highest priority. Rules are never merged; an earlier
// rule with the same pattern is simply shadowed.
func (t *Table) Add(r Rule) {
	t.rules = append(t.rules, r)
}

// Len returns the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Rules returns the rules in priority order, highest first.
func (t *Table) Rules() []Rule {
	out := make([]Rule, 0, len(t.rules))
	for i := len(t.rules) - 1; i >= 0; i-- {
		out = append(out, t.rules[i])
	}
	return out
}

// Dispatch runs the action of the highest-priority rule that is eligible for
// system and whose pattern matches in.
func (t *Table) Dispatch(ctx context.Context, in Input, system string, env *Env) (Result, error) {
	for i := len(t.rules) - 1; i >= 0; i-- {
		r := t.rules[i]
		if !r.Eligible(system) {
			continue
		}
		m, ok := r.Pattern.Match(in)
		if !ok {
			continue
		}
		t.logger.Debug("dispatch",
			zap.String("pattern", r.Pattern.String()),
			zap.String("origin", string(r.Origin)),
			zap.String("system", system))
		return r.Action(ctx, env, m)
	}
	if in.EOF {
		return Result{}, fmt.Errorf("%w: end of input (system %s)", ErrNoRule, system)
	}
	return Result{}, fmt.Errorf("%w: %q (system %s)", ErrNoRule, in.Line, system)
}
