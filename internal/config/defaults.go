package config

// Defaults returns the built-in configuration as a fresh nested map. User
// configuration is deep-merged over it.
func Defaults() map[string]any {
	return map[string]any{
		"global": map[string]any{
			"editingMode":    nil,
			"customCommands": []any{},
			"pathExtensions": []any{},
		},
		"system": map[string]any{
			DefaultSystem: map[string]any{
				"binaryPath":        nil,
				"prompt":            "> ",
				"defaultSubcommand": "status",
			},
			"darcs": map[string]any{
				"defaultSubcommand": "whatsnew --summary",
			},
		},
	}
}
