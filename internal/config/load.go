package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the user's home directory.
const DefaultFileName = ".reposh.yaml"

// Loaded is a validated configuration and the file it was read from.
type Loaded struct {
	Config Config
	// Source is the config file path, or "" when only defaults were used.
	Source string
}

// DefaultPath returns $HOME/.reposh.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Load reads the config file at path, deep-merges it over Defaults and
// validates the result. A missing file is not an error. Files ending in .cue
// are compiled with CUE; anything else is parsed as YAML.
func Load(path string) (Loaded, error) {
	user, found, err := readUserConfig(path)
	if err != nil {
		return Loaded{}, err
	}
	cfg, err := decode(DeepMerge(Defaults(), user))
	if err != nil {
		if found {
			return Loaded{}, fmt.Errorf("%s: %w", path, err)
		}
		return Loaded{}, err
	}
	l := Loaded{Config: cfg}
	if found {
		l.Source = path
	}
	return l, nil
}

func readUserConfig(path string) (map[string]any, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read config: %w", err)
	}
	if filepath.Ext(path) == ".cue" {
		m, err := compileCUE(path, data)
		if err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return m, true, nil
}

// compileCUE evaluates a CUE config file into a plain nested map.
func compileCUE(path string, data []byte) (map[string]any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}
	var m map[string]any
	if err := v.Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid config %s: %v", path, err)
	}
	return m, nil
}
