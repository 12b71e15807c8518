package stringsx

import "strings"

// AccessorKind classifies a method name by the getter/setter naming convention.
type AccessorKind int

const (
	NotAccessor AccessorKind = iota
	Getter
	Setter
)

func (k AccessorKind) String() string {
	switch k {
	case Getter:
		return "getter"
	case Setter:
		return "setter"
	case NotAccessor:
		fallthrough
	default:
		return "none"
	}
}

var (
	getterPrefixes = []string{"get", "Get", "is", "Is"}
	setterPrefixes = []string{"set", "Set"}
)

// AccessorKey splits a getter or setter name into its kind and the key it addresses:
// the prefix ("get", "is" or "set", in either case) is removed and the first remaining
// character is lower-cased, so "getUserName" addresses "userName".
// A name made of the prefix alone is not an accessor.
func AccessorKey(name string) (AccessorKind, string) {
	if rest, ok := TrimFirstPrefix(name, setterPrefixes...); ok {
		return Setter, LowerFirstChar(rest)
	}
	if rest, ok := TrimFirstPrefix(name, getterPrefixes...); ok {
		return Getter, LowerFirstChar(rest)
	}

	return NotAccessor, ""
}

// TrimFirstPrefix removes the first matching prefix from the string `s` found in the list `prefixes`.
// It reports false when no non-empty prefix matches or nothing would remain after trimming.
func TrimFirstPrefix(s string, prefixes ...string) (string, bool) {
	for _, prefix := range prefixes {
		if prefix == "" || len(s) <= len(prefix) {
			continue
		}
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):], true
		}
	}

	return s, false
}
