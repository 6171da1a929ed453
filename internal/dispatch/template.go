package dispatch

import (
	"fmt"
	"regexp"
	"strconv"
)

var placeholderPattern = regexp.MustCompile(`\{(?:system|\$(\d+))\}`)

// checkTemplate rejects {$N} placeholders beyond the pattern's group count.
func checkTemplate(tpl string, groups int) error {
	for _, sub := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
		if sub[1] == "" {
			continue
		}
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			return fmt.Errorf("invalid placeholder %s", sub[0])
		}
		if n > groups {
			return fmt.Errorf("placeholder %s refers to group %d but the pattern has %d", sub[0], n, groups)
		}
	}
	return nil
}

// renderTemplate substitutes {system} with binPath and {$N} with capture N in
// a single pass, so substituted text is never rescanned.
func renderTemplate(tpl, binPath string, m Match) string {
	return placeholderPattern.ReplaceAllStringFunc(tpl, func(ph string) string {
		sub := placeholderPattern.FindStringSubmatch(ph)
		if sub[1] == "" {
			return binPath
		}
		n, _ := strconv.Atoi(sub[1])
		return m.Group(n)
	})
}
