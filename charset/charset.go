package charset

import "strings"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file assembles the ordered alphabet that combinatorial candidates are drawn from.

const (
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Digits  = "0123456789"
	Symbols = " !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Flags selects character classes. FullASCII overrides the individual class flags.
type Flags struct {
	Lowercase, Uppercase, Numeric, Symbols, FullASCII bool
}

// Any reports whether at least one class is selected.
func (f Flags) Any() bool {
	return f.FullASCII || f.Lowercase || f.Uppercase || f.Numeric || f.Symbols
}

// Alphabet is an ordered set of single-byte characters. Its order defines the
// lexicographic order of generated candidates.
type Alphabet string

func (a Alphabet) Len() int { return len(a) }

func (a Alphabet) String() string { return string(a) }

// Assemble builds the alphabet for f. Classes are always concatenated in the same canonical order,
// uppercase, lowercase, digits, then symbols, whether they are selected individually or through
// FullASCII. Duplicate characters keep their first position.
func Assemble(f Flags) Alphabet {
	if f.FullASCII {
		f = Flags{Lowercase: true, Uppercase: true, Numeric: true, Symbols: true}
	}

	var b strings.Builder
	for _, class := range [...]struct {
		on    bool
		chars string
	}{
		{f.Uppercase, Upper},
		{f.Lowercase, Lower},
		{f.Numeric, Digits},
		{f.Symbols, Symbols},
	} {
		if class.on {
			b.WriteString(class.chars)
		}
	}
	return dedupe(b.String())
}

func dedupe(s string) Alphabet {
	var seen [256]bool
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return Alphabet(out)
}
