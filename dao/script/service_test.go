package script

import (
	"context"
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/osmkit/mapscript/parser"
	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
)

//go:embed testdata/*.mscript
var testFS embed.FS

func TestService_Load(t *testing.T) {
	service := New(afs.New(), "embed:///testdata", &testFS)
	script, err := service.Load(context.Background(), "orux")
	assert.Nil(t, err)
	assert.Equal(t, "orux", script.Name)
	assert.Equal(t, 5, len(script.Directives))
	assert.Equal(t, "use-script-dir", script.Directives[0].Name)
	assert.Equal(t, "set-setting", script.Directives[2].Name)

	// second load is served from the cache
	again, err := service.Load(context.Background(), "orux")
	assert.Nil(t, err)
	assert.Same(t, script, again)
}

func TestService_Load_envExpansion(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "cache.mscript")
	source := "change-directory ${env.MAPSCRIPT_TEST_CACHE_DIR}\n"
	assert.Nil(t, os.WriteFile(location, []byte(source), 0o644))
	assert.Nil(t, os.Setenv("MAPSCRIPT_TEST_CACHE_DIR", "Cache"))
	defer os.Unsetenv("MAPSCRIPT_TEST_CACHE_DIR")

	service := New(afs.New(), "")
	script, err := service.Load(context.Background(), location)
	assert.Nil(t, err)
	if assert.Equal(t, 1, len(script.Directives)) {
		value, _ := script.Directives[0].StringArg(parser.PositionalArg)
		assert.Equal(t, "Cache", value)
	}
}

func TestService_Upsert(t *testing.T) {
	dir := t.TempDir()
	service := New(afs.New(), dir)
	script, err := service.Upsert(context.Background(), "generated", []byte("log ready\n"))
	assert.Nil(t, err)
	assert.Equal(t, "generated", script.Name)

	data, err := os.ReadFile(filepath.Join(dir, "generated.mscript"))
	assert.Nil(t, err)
	assert.Equal(t, "log ready\n", string(data))
}

func TestExpandEnvExpr(t *testing.T) {
	os.Setenv("MAPSCRIPT_TEST_A", "1")
	os.Setenv("MAPSCRIPT_TEST_B", "2")
	defer func() {
		os.Unsetenv("MAPSCRIPT_TEST_A")
		os.Unsetenv("MAPSCRIPT_TEST_B")
	}()

	var testCases = []struct {
		description string
		input       string
		expected    string
	}{
		{
			description: "no expression",
			input:       "plain text",
			expected:    "plain text",
		},
		{
			description: "repeated expressions",
			input:       "${env.MAPSCRIPT_TEST_A}-${env.MAPSCRIPT_TEST_B}-${env.MAPSCRIPT_TEST_A}",
			expected:    "1-2-1",
		},
		{
			description: "unset variable expands to empty",
			input:       "x${env.MAPSCRIPT_TEST_UNSET}y",
			expected:    "xy",
		},
		{
			description: "unterminated expression stays literal",
			input:       "keep ${env.MAPSCRIPT_TEST_A literal",
			expected:    "keep ${env.MAPSCRIPT_TEST_A literal",
		},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, expandEnvExpr(testCase.input), testCase.description)
	}
}
