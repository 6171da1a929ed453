package config

// DeepMerge returns a copy of base with override merged into it. Nested maps
// merge key by key; any other value in override, lists included, replaces the
// value in base. Neither input is modified.
func DeepMerge(base, override map[string]any) map[string]any {
	out := map[string]any{}
	if base != nil {
		if cp, ok := deepCopyAny(base).(map[string]any); ok {
			out = cp
		}
	}
	for k, ov := range override {
		if bv, ok := out[k]; ok {
			bm, bok := asStringMap(bv)
			om, ook := asStringMap(ov)
			if bok && ook {
				out[k] = DeepMerge(bm, om)
				continue
			}
		}
		out[k] = deepCopyAny(ov)
	}
	return out
}

func asStringMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		out := map[string]any{}
		for k, vv := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = vv
		}
		return out, true
	default:
		return nil, false
	}
}

func deepCopyAny(v any) any {
	if m, ok := asStringMap(v); ok {
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k] = deepCopyAny(vv)
		}
		return out
	}
	if l, ok := v.([]any); ok {
		out := make([]any, len(l))
		for i, vv := range l {
			out[i] = deepCopyAny(vv)
		}
		return out
	}
	return v
}
