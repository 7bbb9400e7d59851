package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// Identifier is a project prefix, a YYMD date token and a step suffix,
// e.g. "proj22o1b" -> {proj, 22o1, b}
type Identifier struct {
	Project string // [a-zA-Z]*
	Date    string // YYMD
	Step    string // [a-z]*
}

func (id Identifier) String() string {
	return id.Project + id.Date + id.Step
}

// Compare orders identifiers by date, then step, then project. Date tokens
// sort chronologically as plain strings since every alphabet is ascending ASCII.
func (id Identifier) Compare(other Identifier) int {
	if c := strings.Compare(id.Date, other.Date); c != 0 {
		return c
	}
	if c := compareStep(id.Step, other.Step); c != 0 {
		return c
	}
	return strings.Compare(id.Project, other.Project)
}

// compareStep puts shorter steps first so "z" sorts before "aa"
func compareStep(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// ParseIdentifier parses a whole string as project + date token + step
func ParseIdentifier(s string) (Identifier, error) {
	id, n, ok := scanIdentifier(s)
	if !ok {
		return Identifier{}, &FormatError{Input: s, Reason: "expected letters, a YYMD date token and lowercase step letters"}
	}
	if n != len(s) {
		return Identifier{}, &FormatError{Input: s, Reason: fmt.Sprintf("unexpected trailing %q", s[n:])}
	}
	return id, nil
}

// MatchIdentifier matches an identifier at the start of name and ignores the
// rest, e.g. "proj22o1b_notes.md" -> proj22o1b
func MatchIdentifier(name string) (Identifier, bool) {
	id, _, ok := scanIdentifier(name)
	return id, ok
}

// scanIdentifier returns the identifier at the start of s and its length.
// The date token starts with a digit, so the project is the longest run of
// leading letters and no backtracking is needed.
func scanIdentifier(s string) (Identifier, int, bool) {
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}

	j := i + DateTokenLen
	if j > len(s) || !IsDateToken(s[i:j]) {
		return Identifier{}, 0, false
	}

	k := j
	for k < len(s) && isLower(s[k]) {
		k++
	}

	return Identifier{Project: s[:i], Date: s[i:j], Step: s[j:k]}, k, true
}

func isLetter(c byte) bool {
	return isLower(c) || (c >= 'A' && c <= 'Z')
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
