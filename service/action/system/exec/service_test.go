package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/service/action/system"
	"github.com/stretchr/testify/assert"
	"github.com/viant/gosh/runner"
)

type mockRunner struct {
	commands []string
	stdout   string
	status   int
	err      error
	closed   bool
}

func (m *mockRunner) Run(ctx context.Context, command string, options ...runner.Option) (string, int, error) {
	m.commands = append(m.commands, command)
	return m.stdout, m.status, m.err
}

func (m *mockRunner) Close() error {
	m.closed = true
	return nil
}

func newMockService(mock *mockRunner) *Service {
	return New(WithRunnerFactory(func(ctx context.Context, host *system.Host, env map[string]string) (Runner, error) {
		return mock, nil
	}))
}

func TestService_Run(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "generate_tiles.sh")
	assert.Nil(t, os.WriteFile(program, []byte("#!/bin/sh\n"), 0o755))

	var testCases = []struct {
		description string
		input       *RunInput
		mock        *mockRunner
		expectErr   error
		expect      func(t *testing.T, mock *mockRunner, output *Output)
	}{
		{
			description: "successful invocation",
			input:       &RunInput{Path: program, Args: []string{"--zoom", "7 12"}},
			mock:        &mockRunner{stdout: "done"},
			expect: func(t *testing.T, mock *mockRunner, output *Output) {
				assert.Equal(t, []string{program + ` --zoom "7 12"`}, mock.commands)
				assert.Equal(t, "done", output.Stdout)
				assert.Equal(t, 0, output.Status)
			},
		},
		{
			description: "missing program",
			input:       &RunInput{Path: filepath.Join(dir, "missing.sh")},
			mock:        &mockRunner{},
			expectErr:   types.ErrPathResolution,
		},
		{
			description: "non zero exit status",
			input:       &RunInput{Path: program},
			mock:        &mockRunner{stdout: "boom", status: 2},
			expectErr:   types.ErrExternalInvocation,
			expect: func(t *testing.T, mock *mockRunner, output *Output) {
				assert.Equal(t, 2, output.Status)
				assert.Equal(t, "boom", output.Stderr)
			},
		},
		{
			description: "runner failure",
			input:       &RunInput{Path: program},
			mock:        &mockRunner{err: fmt.Errorf("connection lost")},
			expectErr:   types.ErrExternalInvocation,
		},
	}

	for _, testCase := range testCases {
		service := newMockService(testCase.mock)
		output := &Output{}
		err := service.Run(context.Background(), testCase.input, output)
		if testCase.expectErr != nil {
			assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
		} else {
			assert.Nil(t, err, testCase.description)
		}
		if testCase.expect != nil {
			testCase.expect(t, testCase.mock, output)
		}
	}
}

func TestService_RunScript(t *testing.T) {
	dir := t.TempDir()
	scriptFile := filepath.Join(dir, "export_orux.py")
	assert.Nil(t, os.WriteFile(scriptFile, []byte("print('ok')\n"), 0o644))

	mock := &mockRunner{stdout: "ok"}
	service := newMockService(mock)
	output := &Output{}
	err := service.RunScript(context.Background(), &RunScriptInput{File: scriptFile}, output)
	assert.Nil(t, err)
	// defaults to the python interpreter
	assert.Equal(t, []string{"python " + scriptFile}, mock.commands)
	assert.Equal(t, "ok", output.Stdout)
}

func TestService_Close(t *testing.T) {
	dir := t.TempDir()
	program := filepath.Join(dir, "noop.sh")
	assert.Nil(t, os.WriteFile(program, []byte("#!/bin/sh\n"), 0o755))

	mock := &mockRunner{}
	service := newMockService(mock)
	assert.Nil(t, service.Run(context.Background(), &RunInput{Path: program}, &Output{}))
	assert.Nil(t, service.Close(context.Background()))
	assert.True(t, mock.closed)
}
