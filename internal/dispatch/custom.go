package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/flarebyte/reposh/internal/config"
)

// RuleError identifies a custom command that could not be built.
type RuleError struct {
	// Index is the zero-based position in global.customCommands.
	Index   int
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("custom command #%d (pattern %q): %v", e.Index+1, e.Pattern, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// BuildCustom turns a configured custom command into a rule. The pattern must
// compile and every {$N} in the template must name an existing group.
func BuildCustom(index int, cc config.CustomCommand) (Rule, error) {
	re, err := regexp.Compile(cc.Pattern)
	if err != nil {
		return Rule{}, &RuleError{Index: index, Pattern: cc.Pattern, Err: err}
	}
	if err := checkTemplate(cc.Rule, re.NumSubexp()); err != nil {
		return Rule{}, &RuleError{Index: index, Pattern: cc.Pattern, Err: err}
	}
	tpl := cc.Rule
	return Rule{
		Pattern: Regexp(re),
		Systems: parseSystems(cc.For),
		Origin:  Custom,
		Action: func(ctx context.Context, env *Env, m Match) (Result, error) {
			cmd := renderTemplate(tpl, env.System.BinaryPath, m)
			fmt.Fprintln(env.Out, cmd)
			return env.Run(ctx, cmd)
		},
	}, nil
}

// RegisterCustom builds every custom command and adds them in order, so later
// entries take priority. Nothing is added if any entry fails to build.
func RegisterCustom(t *Table, commands []config.CustomCommand) error {
	rules := make([]Rule, 0, len(commands))
	for i, cc := range commands {
		r, err := BuildCustom(i, cc)
		if err != nil {
			return err
		}
		rules = append(rules, r)
	}
	for _, r := range rules {
		t.Add(r)
	}
	return nil
}

// parseSystems splits a comma-separated system list. A missing or blank list
// means the rule applies to every system.
func parseSystems(list *string) []string {
	if list == nil {
		return nil
	}
	var out []string
	for _, s := range strings.Split(*list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
