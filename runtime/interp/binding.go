package interp

import (
	"strings"

	"github.com/osmkit/mapscript/parser"
)

// Binding maps a directive name onto a handler service method and describes
// how raw script arguments become the handler input.
type Binding struct {
	// Service and Method identify the handler
	Service string
	Method  string
	// DefaultArg is the input key a positional argument maps to
	DefaultArg string
	// Rename maps script argument keys onto input keys where the generic
	// dash-to-camel normalisation is not enough
	Rename map[string]string
	// Prepare optionally adjusts normalised arguments before conversion
	Prepare func(args map[string]interface{})
	// External marks directives that invoke external programs and are
	// therefore subject to the run policy
	External bool
}

// Arguments normalises directive arguments for the handler input
func (b *Binding) Arguments(raw map[string]interface{}) map[string]interface{} {
	args := make(map[string]interface{}, len(raw))
	for key, value := range raw {
		if key == parser.PositionalArg && b.DefaultArg != "" {
			key = b.DefaultArg
		}
		if renamed, ok := b.Rename[key]; ok {
			key = renamed
		}
		args[dashToCamel(key)] = value
	}
	if b.Prepare != nil {
		b.Prepare(args)
	}
	return args
}

// dashToCamel converts script argument keys (base-dir) to input field keys
// (baseDir)
func dashToCamel(key string) string {
	if !strings.Contains(key, "-") {
		return key
	}
	parts := strings.Split(key, "-")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// DefaultBindings returns the built-in directive table
func DefaultBindings() map[string]*Binding {
	ret := map[string]*Binding{
		"use-script-dir": {
			Service: "map/nav",
			Method:  "useScriptDir",
		},
		"change-directory": {
			Service:    "map/nav",
			Method:     "changeDir",
			DefaultArg: "dir",
		},
		"set-setting": {
			Service: "map/settings",
			Method:  "set",
		},
		"load-source": {
			Service:    "map/layers",
			Method:     "load",
			DefaultArg: "location",
			Rename:     map[string]string{"file": "location", "path": "location"},
		},
		"set-geo-bounds": {
			Service:    "map/layers",
			Method:     "setGeoBounds",
			DefaultArg: "source",
		},
		"run-script": {
			Service:    "system/exec",
			Method:     "runScript",
			DefaultArg: "file",
			Rename:     map[string]string{"timeout": "timeoutMs"},
			External:   true,
		},
		"run-program": {
			Service:    "system/exec",
			Method:     "run",
			DefaultArg: "path",
			Rename:     map[string]string{"timeout": "timeoutMs"},
			Prepare:    prepareArgsList("args"),
			External:   true,
		},
		"zip": {
			Service: "system/storage",
			Method:  "zip",
			Prepare: prepareArgsList("files"),
		},
		"log": {
			Service:    "printer",
			Method:     "print",
			DefaultArg: "message",
		},
		"pause": {
			Service:    "system/pause",
			Method:     "pause",
			DefaultArg: "duration",
			Rename:     map[string]string{"duration": "durationMs"},
		},
	}
	// original scripts use both change-dir and change-directory
	ret["change-dir"] = ret["change-directory"]
	return ret
}

// prepareArgsList turns a space-separated scalar into a string list
func prepareArgsList(key string) func(args map[string]interface{}) {
	return func(args map[string]interface{}) {
		value, ok := args[key]
		if !ok {
			return
		}
		if text, ok := value.(string); ok {
			args[key] = strings.Fields(text)
		}
	}
}
