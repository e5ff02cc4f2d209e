package parser

import (
	"strconv"
	"strings"

	"github.com/osmkit/mapscript/model"
)

// ParseValue converts a bare scalar into its typed literal.  Quoted values
// never reach this function and therefore always stay strings.
func ParseValue(text string) interface{} {
	switch strings.ToLower(text) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if value, err := strconv.Atoi(text); err == nil {
		return value
	}
	if value, err := strconv.ParseFloat(text, 64); err == nil {
		return value
	}
	if strings.HasSuffix(text, "%") {
		if value, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64); err == nil {
			return model.Percent(value)
		}
	}
	return text
}
