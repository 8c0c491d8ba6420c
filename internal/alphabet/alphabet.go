package alphabet

import (
	"fmt"
	"sort"
	"strings"

	"seqscope/internal/bitmap"
)

// Alphabet is the declared set of symbols a payload may contain.
// Membership is case-insensitive so soft-masked (lowercase) symbols match.
type Alphabet struct {
	name    string
	symbols bitmap.Bitmap
	any     bool
}

// New builds an alphabet from the given symbols.
func New(name, symbols string) *Alphabet {
	set := bitmap.NewBitmap(256)
	for i := 0; i < len(symbols); i++ {
		c := symbols[i]
		set.Add(uint64(upper(c)))
		set.Add(uint64(lower(c)))
	}
	return &Alphabet{name: name, symbols: set}
}

var (
	DNA     = New("dna", "ACGTN")
	RNA     = New("rna", "ACGUN")
	IUPAC   = New("iupac", "ACGTURYSWKMBDHVN-*.")
	Protein = New("protein", "ACDEFGHIKLMNPQRSTVWYBJOUXZ*-")
	// Any accepts every byte.
	Any = &Alphabet{name: "any", symbols: bitmap.NewBitmap(256), any: true}
)

var builtins = map[string]*Alphabet{
	DNA.name:     DNA,
	RNA.name:     RNA,
	IUPAC.name:   IUPAC,
	Protein.name: Protein,
	Any.name:     Any,
}

// Lookup resolves a built-in alphabet by name.
func Lookup(name string) (*Alphabet, error) {
	if a, ok := builtins[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("alphabet: unknown alphabet %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the built-in alphabet names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Alphabet) Name() string {
	return a.name
}

func (a *Alphabet) String() string {
	return a.name
}

// Contains reports whether c is a member of the alphabet.
func (a *Alphabet) Contains(c byte) bool {
	return a.any || a.symbols.Contains(uint64(c))
}

// FirstInvalid returns the index of the first byte of s outside the
// alphabet, or -1 if every byte is a member.
func (a *Alphabet) FirstInvalid(s []byte) int {
	if a.any {
		return -1
	}
	for i, c := range s {
		if !a.symbols.Contains(uint64(c)) {
			return i
		}
	}
	return -1
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
