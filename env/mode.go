// Package env interprets the SAMOYED environment variable.
package env

// Variable is the environment variable that controls hook behavior.
const Variable = "SAMOYED"

// Mode is the tri-state behavior selected by SAMOYED.
type Mode int

const (
	// Normal runs hooks and installs as usual.
	Normal Mode = iota
	// Disabled skips installation and makes every hook succeed without work.
	Disabled
	// Debug behaves like Normal with shell tracing and debug logging.
	Debug
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ParseMode maps a raw SAMOYED value to a Mode. "0" disables, "2" enables
// debug, and anything else (including unset) is Normal.
func ParseMode(value string, set bool) Mode {
	if !set {
		return Normal
	}
	switch value {
	case "0":
		return Disabled
	case "2":
		return Debug
	default:
		return Normal
	}
}

// ModeFrom reads SAMOYED through lookup.
func ModeFrom(lookup LookupFunc) Mode {
	if lookup == nil {
		return Normal
	}
	value, set := lookup(Variable)
	return ParseMode(value, set)
}

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func (m Mode) String() string {
	switch m {
	case Disabled:
		return "disabled"
	case Debug:
		return "debug"
	default:
		return "normal"
	}
}
