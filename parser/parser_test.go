package parser

import (
	"errors"
	"testing"

	"github.com/osmkit/mapscript/model"
	"github.com/osmkit/mapscript/model/types"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expect      []*model.Directive
		expectErr   bool
		expectErrIs error
	}{
		{
			name: "typical script",
			input: `// IsraelHiking map build
use-script-dir
change-directory dir=..
set-setting name=map.decoration.grid value=false

load-source Cache/israel-and-palestine-latest.osm.pbf
run-script file="Scripts/Maperitive/IsraelHiking.mscript" timeout=120000
`,
			expect: []*model.Directive{
				{Name: "use-script-dir", Args: map[string]interface{}{}, Line: 2},
				{Name: "change-directory", Args: map[string]interface{}{"dir": ".."}, Line: 3},
				{Name: "set-setting", Args: map[string]interface{}{"name": "map.decoration.grid", "value": false}, Line: 4},
				{Name: "load-source", Args: map[string]interface{}{"arg": "Cache/israel-and-palestine-latest.osm.pbf"}, Line: 6},
				{Name: "run-script", Args: map[string]interface{}{"file": "Scripts/Maperitive/IsraelHiking.mscript", "timeout": 120000}, Line: 7},
			},
		},
		{
			name:  "typed scalars",
			input: `set-setting name=map.rendering.tiles.rendering-bounds-buffer value=10%`,
			expect: []*model.Directive{
				{Name: "set-setting", Args: map[string]interface{}{"name": "map.rendering.tiles.rendering-bounds-buffer", "value": model.Percent(10)}, Line: 1},
			},
		},
		{
			name:  "quoted value with escapes",
			input: `log message="tiles \"done\""`,
			expect: []*model.Directive{
				{Name: "log", Args: map[string]interface{}{"message": `tiles "done"`}, Line: 1},
			},
		},
		{
			name:  "trailing comment",
			input: `pause duration=15000 // wait for the previous build`,
			expect: []*model.Directive{
				{Name: "pause", Args: map[string]interface{}{"duration": 15000}, Line: 1},
			},
		},
		{
			name:        "missing value after equals",
			input:       `change-directory dir=`,
			expectErr:   true,
			expectErrIs: types.ErrMalformedArgument,
		},
		{
			name:        "two positional arguments",
			input:       `load-source a.pbf b.pbf`,
			expectErr:   true,
			expectErrIs: types.ErrMalformedArgument,
		},
		{
			name:        "positional argument after key=value pair",
			input:       `run-script timeout=120000 build.mscript`,
			expectErr:   true,
			expectErrIs: types.ErrMalformedArgument,
		},
		{
			name:      "directive name must start with a letter",
			input:     `1-load-source a.pbf`,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			script, err := Parse([]byte(tc.input))
			if tc.expectErr {
				if !assert.NotNil(t, err) {
					return
				}
				if tc.expectErrIs != nil {
					assert.True(t, errors.Is(err, tc.expectErrIs), "err: %v", err)
				}
				return
			}
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, tc.expect, script.Directives)
		})
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, ParseValue("True"))
	assert.Equal(t, false, ParseValue("false"))
	assert.Equal(t, 16, ParseValue("16"))
	assert.Equal(t, 0.5, ParseValue("0.5"))
	assert.Equal(t, model.Percent(12.5), ParseValue("12.5%"))
	assert.Equal(t, "sk42", ParseValue("sk42"))
}
