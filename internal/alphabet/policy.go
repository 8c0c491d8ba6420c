package alphabet

import (
	"fmt"
	"strings"
)

// Policy decides what happens when a payload holds symbols outside the
// declared alphabet.
type Policy uint8

const (
	// PolicyStrict rejects the record.
	PolicyStrict Policy = iota
	// PolicyPermissive passes the symbols through unchanged.
	PolicyPermissive
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyPermissive:
		return "permissive"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy parses "strict" or "permissive".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return PolicyStrict, nil
	case "permissive", "lenient":
		return PolicyPermissive, nil
	default:
		return PolicyStrict, fmt.Errorf("alphabet: unknown policy %q", s)
	}
}
