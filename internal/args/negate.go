package args

import "strings"

type flagValue struct {
	present  bool
	hasValue bool
	value    string
}

// enabled is how a present flag reads as a boolean: anything but "0" is on.
func (f flagValue) enabled() bool {
	return !f.hasValue || f.value != "0"
}

// NegatedName maps -name to -noname.
func NegatedName(key string) string {
	return "-no" + strings.TrimPrefix(key, "-")
}

// resolveBool applies the -noX convention. The direct flag always wins over
// its negation regardless of the order they were supplied in.
func resolveBool(direct, negated flagValue, def bool) bool {
	switch {
	case direct.present:
		return direct.enabled()
	case negated.present:
		return !negated.enabled()
	default:
		return def
	}
}
