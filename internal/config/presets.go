package config

// DefaultPreset is used when neither a preset nor a template is given.
const DefaultPreset = "passthrough"

// Preset is a named template.
type Preset struct {
	Name        string
	Format      string
	Description string
	// Builtin is false for presets from a config file, including ones that
	// shadow a built-in name.
	Builtin bool
}

var builtins = []Preset{
	{Name: "passthrough", Format: "%f:%l:%c: %k: %m", Description: "input already in editor syntax; normalises kinds", Builtin: true},
	{Name: "gcc", Format: "%f:%l:%c: %k: %m", Description: "gcc and clang", Builtin: true},
	{Name: "go", Format: "%f:%l:%c: %m", Description: "go build, go vet", Builtin: true},
	{Name: "php", Format: "PHP %k: %m in %f on line %l", Description: "php -l", Builtin: true},
	{Name: "eslint", Format: "%f:%l:%c: %m [%k]", Description: "eslint --format unix", Builtin: true},
	{Name: "rustc", Format: "%f:%l:%c: %k: %m", Description: "rustc --error-format=short", Builtin: true},
}

// Builtins returns the built-in presets in display order.
func Builtins() []Preset {
	out := make([]Preset, len(builtins))
	copy(out, builtins)
	return out
}

// Builtin looks up a built-in preset by name.
func Builtin(name string) (Preset, bool) {
	for _, p := range builtins {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
