package config

// DefaultSystem is the system record consulted when a per-system field is absent.
const DefaultSystem = "default"

// Config is the merged and validated configuration.
type Config struct {
	Global Global            `json:"global" yaml:"global"`
	System map[string]System `json:"system" yaml:"system"`
}

// Global holds settings shared by every system.
type Global struct {
	EditingMode    *string         `json:"editingMode,omitempty" yaml:"editingMode"`
	CustomCommands []CustomCommand `json:"customCommands" yaml:"customCommands"`
	PathExtensions []string        `json:"pathExtensions" yaml:"pathExtensions"`
}

// CustomCommand is a user-defined rule: a regular expression, a command
// template using {system} and {$N} placeholders, and an optional
// comma-separated list of systems it applies to.
type CustomCommand struct {
	Pattern string  `json:"pattern" yaml:"pattern"`
	Rule    string  `json:"rule" yaml:"rule"`
	For     *string `json:"for,omitempty" yaml:"for"`
}

// System holds per-VCS settings. Nil fields fall back to the default record.
type System struct {
	BinaryPath        *string `json:"binaryPath,omitempty" yaml:"binaryPath"`
	Prompt            *string `json:"prompt,omitempty" yaml:"prompt"`
	DefaultSubcommand *string `json:"defaultSubcommand,omitempty" yaml:"defaultSubcommand"`
}

// Resolved is the effective configuration for one system.
type Resolved struct {
	Name              string `json:"name"`
	BinaryPath        string `json:"binaryPath"`
	Prompt            string `json:"prompt"`
	DefaultSubcommand string `json:"defaultSubcommand"`
}

// Resolve applies the system.default fallback for every field of the named
// system. An empty binary path resolves to the system name itself.
func (c Config) Resolve(system string) Resolved {
	r := Resolved{
		Name:              system,
		BinaryPath:        c.lookup(system, func(s System) *string { return s.BinaryPath }),
		Prompt:            c.lookup(system, func(s System) *string { return s.Prompt }),
		DefaultSubcommand: c.lookup(system, func(s System) *string { return s.DefaultSubcommand }),
	}
	if r.BinaryPath == "" {
		r.BinaryPath = system
	}
	return r
}

// EditingMode returns the configured editing mode or "" when unset.
func (c Config) EditingMode() string {
	if c.Global.EditingMode == nil {
		return ""
	}
	return *c.Global.EditingMode
}

func (c Config) lookup(system string, field func(System) *string) string {
	if s, ok := c.System[system]; ok {
		if v := field(s); v != nil {
			return *v
		}
	}
	if v := field(c.System[DefaultSystem]); v != nil {
		return *v
	}
	return ""
}
