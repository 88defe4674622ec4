package renders

// bindingDefaults is the fallback table for names component logic
// references without declaring. Inherited verbatim from the generator
// contract; whether these should come from a declared schema instead is
// an open product decision.
var bindingDefaults = map[string]any{
	"barHeight":   24,
	"spacing":     12,
	"topMargin":   0,
	"rayCount":    12,
	"itemHeight":  56,
	"itemSpacing": 12,
	"iconSize":    48,
}

// defaultFor resolves the value self-healing binds for name: the
// instance's properties first, the built-in table second, zero last.
func defaultFor(name string, props map[string]any) any {
	if v, ok := props[name]; ok {
		return v
	}
	if v, ok := bindingDefaults[name]; ok {
		return v
	}
	return 0
}
