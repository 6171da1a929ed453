package shell

import "github.com/flarebyte/reposh/internal/config"

// Description is the resolved state of a session, as printed by
// "reposh diagnose".
type Description struct {
	ConfigFile     string          `json:"configFile,omitempty"`
	EditingMode    string          `json:"editingMode,omitempty"`
	System         config.Resolved `json:"system"`
	PathExtensions []string        `json:"pathExtensions"`
	Rules          []RuleInfo      `json:"rules"`
}

// RuleInfo describes one rule, highest priority first.
type RuleInfo struct {
	Pattern string   `json:"pattern"`
	Origin  string   `json:"origin"`
	Systems []string `json:"systems,omitempty"`
	Active  bool     `json:"active"`
}

// Describe snapshots the configuration and rule table.
func (s *Session) Describe() Description {
	exts := s.env.PathExtensions
	if exts == nil {
		exts = []string{}
	}
	d := Description{
		ConfigFile:     s.loaded.Source,
		EditingMode:    s.loaded.Config.EditingMode(),
		System:         s.env.System,
		PathExtensions: exts,
	}
	for _, r := range s.table.Rules() {
		d.Rules = append(d.Rules, RuleInfo{
			Pattern: r.Pattern.String(),
			Origin:  string(r.Origin),
			Systems: r.Systems,
			Active:  r.Eligible(s.env.System.Name),
		})
	}
	return d
}
