package parser

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	commentCode
	nameCode
	equalsCode
	quotedCode
	scalarCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	commentToken    = parsly.NewToken(commentCode, "Comment", newCommentMatcher())
	nameToken       = parsly.NewToken(nameCode, "DirectiveName", newNameMatcher())
	equalsToken     = parsly.NewToken(equalsCode, "=", matcher.NewByte('='))
	quotedToken     = parsly.NewToken(quotedCode, "QuotedValue", newQuotedMatcher())
	scalarToken     = parsly.NewToken(scalarCode, "Value", newScalarMatcher())
)

func newCommentMatcher() parsly.Matcher {
	return &commentMatcher{}
}

func newNameMatcher() parsly.Matcher {
	return &nameMatcher{}
}

func newQuotedMatcher() parsly.Matcher {
	return &quotedMatcher{}
}

func newScalarMatcher() parsly.Matcher {
	return &scalarMatcher{}
}

// commentMatcher matches a // comment running to the end of input
type commentMatcher struct{}

func (m *commentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+1 >= size || input[pos] != '/' || input[pos+1] != '/' {
		return 0
	}
	return size - pos
}

// nameMatcher matches a directive name: a letter followed by letters, digits
// or dashes (change-directory, set-geo-bounds, ...)
type nameMatcher struct{}

func (m *nameMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}
	if !isLetter(input[pos]) {
		return 0
	}
	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '-' {
			matched++
			continue
		}
		break
	}
	return matched
}

// quotedMatcher matches a double-quoted value with backslash escapes
type quotedMatcher struct{}

func (m *quotedMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size || input[pos] != '"' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '\\':
			i++
		case '"':
			return i - pos + 1
		}
	}
	return 0
}

// scalarMatcher matches a bare value: everything up to whitespace, '=' or a
// comment marker (paths, numbers, enum names, percentages)
type scalarMatcher struct{}

func (m *scalarMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if isWhitespace(input[i]) || input[i] == '=' {
			break
		}
		if input[i] == '/' && i+1 < size && input[i+1] == '/' {
			break
		}
		matched++
	}
	return matched
}

// Helper functions
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
