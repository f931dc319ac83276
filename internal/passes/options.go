package passes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNameMismatch reports that an invocation string does not belong to the
// pass it was matched against. Dispatchers treat it as "try the next pass",
// never as a configuration error.
var ErrNameMismatch = errors.New("pass name not matched")

// Option is one schema entry: an option name and its default value. An
// empty default marks the option as required.
type Option struct {
	Name    string
	Default string
}

// OptionSet holds fully resolved option values keyed by name. Every value
// is non-empty once ParseOptions succeeds.
type OptionSet map[string]string

// Value returns the resolved value for name. The schema guarantees it is
// non-empty for any name the schema declares.
func (s OptionSet) Value(name string) string {
	return s[name]
}

// Uint decodes the named option as an unsigned integer.
func (s OptionSet) Uint(name string) (uint64, error) {
	v, err := strconv.ParseUint(s[name], 10, 64)
	if err != nil {
		return 0, newOptionError(name, fmt.Sprintf("value %q is not an unsigned integer", s[name]))
	}
	return v, nil
}

// Bool decodes the named option as a boolean.
func (s OptionSet) Bool(name string) (bool, error) {
	v, err := strconv.ParseBool(s[name])
	if err != nil {
		return false, newOptionError(name, fmt.Sprintf("value %q is not a boolean", s[name]))
	}
	return v, nil
}

// ParseOptions resolves a raw parameter string against a schema.
//
// The string is split on ';' into trimmed items; empty items are dropped.
// Each item must contain exactly one '=' separating a non-empty trimmed key
// from a non-empty trimmed value, and the key must match a schema entry
// exactly. After all overrides apply, every schema entry must hold a
// non-empty value: an empty default is how a schema marks an option
// required.
func ParseOptions(params string, schema []Option) (OptionSet, error) {
	set := make(OptionSet, len(schema))
	for _, opt := range schema {
		set[opt.Name] = opt.Default
	}

	for _, item := range strings.Split(params, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Count(item, "=") != 1 {
			return nil, newOptionError(item, fmt.Sprintf("malformed option %q", item))
		}
		k, v, _ := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" || v == "" {
			return nil, newOptionError(item, fmt.Sprintf("malformed option %q", item))
		}
		if _, known := set[k]; !known {
			return nil, newOptionError(k, fmt.Sprintf("unknown option %q", k))
		}
		set[k] = v
	}

	for _, opt := range schema {
		if set[opt.Name] == "" {
			return nil, newOptionError(opt.Name, fmt.Sprintf("missing required option %q", opt.Name))
		}
	}
	return set, nil
}

// MatchParamPass matches an invocation string against a pass base name and
// extracts its options.
//
// Two forms match: the bare base name, which applies schema defaults but
// still requires every required option to resolve, and "base<params>",
// whose bracketed body is the raw parameter string. Any other name, and
// any malformed bracketing, returns ErrNameMismatch so the caller can try
// the next registered pass without reporting an error.
func MatchParamPass(name, base string, schema []Option) (OptionSet, error) {
	if name == base {
		return ParseOptions("", schema)
	}
	if !strings.HasPrefix(name, base) {
		return nil, ErrNameMismatch
	}
	rest := name[len(base):]
	if len(rest) < 2 || rest[0] != '<' || !strings.HasSuffix(rest, ">") {
		return nil, ErrNameMismatch
	}
	return ParseOptions(rest[1:len(rest)-1], schema)
}
