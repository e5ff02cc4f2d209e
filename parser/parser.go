// Package parser implements the line-oriented directive grammar of
// map-styling scripts:
//
//	// comment
//	directive-name key=value other-key="quoted value"
//	load-source Cache/israel-and-palestine-latest.osm.pbf
//
// Each directive has a name, optional key=value arguments and at most one
// leading positional argument.  Scalar values are typed: booleans, integers,
// floats and percentages are recognised, everything else stays a string.
package parser

import (
	"fmt"
	"strings"

	"github.com/osmkit/mapscript/model"
	"github.com/osmkit/mapscript/model/types"
	"github.com/viant/parsly"
)

// PositionalArg is the argument key under which a directive's single
// positional value is stored until the interpreter maps it to the
// directive's declared default argument.
const PositionalArg = "arg"

// Parse parses script text into an ordered directive sequence
func Parse(data []byte) (*model.Script, error) {
	script := &model.Script{}
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		directive, err := parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		if directive == nil {
			continue
		}
		script.Directives = append(script.Directives, directive)
	}
	return script, nil
}

func parseLine(line string, lineNo int) (*model.Directive, error) {
	cursor := parsly.NewCursor("", []byte(line), 0)
	matched := cursor.MatchAfterOptional(whitespaceToken, commentToken, nameToken)
	switch matched.Code {
	case parsly.EOF, commentCode:
		return nil, nil
	case nameCode:
	default:
		return nil, fmt.Errorf("line %d: %w", lineNo, cursor.NewError(nameToken))
	}
	directive := model.NewDirective(matched.Text(cursor), lineNo, nil)

	for {
		matched = cursor.MatchAfterOptional(whitespaceToken, commentToken, quotedToken, scalarToken)
		switch matched.Code {
		case parsly.EOF, commentCode:
			return directive, nil
		case quotedCode:
			value, err := unquote(matched.Text(cursor))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", lineNo, types.ErrMalformedArgument, err)
			}
			if err := setPositional(directive, value, lineNo); err != nil {
				return nil, err
			}
		case scalarCode:
			text := matched.Text(cursor)
			if equals := cursor.MatchOne(equalsToken); equals.Code != equalsCode {
				if err := setPositional(directive, ParseValue(text), lineNo); err != nil {
					return nil, err
				}
				continue
			}
			value, err := parsePairValue(cursor, lineNo)
			if err != nil {
				return nil, err
			}
			directive.Args[text] = value
		default:
			return nil, fmt.Errorf("line %d: %w: %v", lineNo, types.ErrMalformedArgument, cursor.NewError(scalarToken))
		}
	}
}

func parsePairValue(cursor *parsly.Cursor, lineNo int) (interface{}, error) {
	matched := cursor.MatchAny(quotedToken, scalarToken)
	switch matched.Code {
	case quotedCode:
		return unquote(matched.Text(cursor))
	case scalarCode:
		return ParseValue(matched.Text(cursor)), nil
	}
	return nil, fmt.Errorf("line %d: %w: missing value after '=': %v", lineNo, types.ErrMalformedArgument, cursor.NewError(scalarToken))
}

func setPositional(directive *model.Directive, value interface{}, lineNo int) error {
	if _, ok := directive.Args[PositionalArg]; ok {
		return fmt.Errorf("line %d: %w: directive %v has more than one positional argument", lineNo, types.ErrMalformedArgument, directive.Name)
	}
	if len(directive.Args) > 0 {
		return fmt.Errorf("line %d: %w: directive %v has positional argument after key=value pair", lineNo, types.ErrMalformedArgument, directive.Name)
	}
	directive.Args[PositionalArg] = value
	return nil
}

func unquote(text string) (string, error) {
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", fmt.Errorf("malformed quoted value: %s", text)
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
		}
		b.WriteByte(body[i])
	}
	return b.String(), nil
}
