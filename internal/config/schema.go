package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// decode validates the merged map against the #Config schema and decodes it
// into the typed configuration.
func decode(merged map[string]any) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid schema: %v", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(merged))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	var c Config
	if err := v.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	return c, nil
}
