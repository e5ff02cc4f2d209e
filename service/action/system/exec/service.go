package exec

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/osmkit/mapscript/service/action/system"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
	"golang.org/x/crypto/ssh"
)

// Runner abstracts the external-program collaborator so tests can substitute
// a mock instead of shelling out.
type Runner interface {
	Run(ctx context.Context, command string, options ...runner.Option) (string, int, error)
	Close() error
}

// RunnerFactory opens a runner for a host
type RunnerFactory func(ctx context.Context, host *system.Host, env map[string]string) (Runner, error)

// Service invokes external programs and scripts
type Service struct {
	fs       afs.Service
	open     RunnerFactory
	sessions map[string]Runner
	mux      sync.Mutex
}

// Option customises the exec service
type Option func(*Service)

// WithRunnerFactory overrides how command runners are opened, used by tests
// to mock the external collaborator.
func WithRunnerFactory(factory RunnerFactory) Option {
	return func(s *Service) {
		s.open = factory
	}
}

// New creates a new exec service
func New(opts ...Option) *Service {
	ret := &Service{
		fs:       afs.New(),
		sessions: make(map[string]Runner),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.open == nil {
		ret.open = openRunner
	}
	return ret
}

// Run invokes an external program and waits for completion
func (s *Service) Run(ctx context.Context, input *RunInput, output *Output) error {
	input.Init()
	if input.Path == "" {
		return fmt.Errorf("%w: path is required", types.ErrMalformedArgument)
	}
	path := input.Path
	if sess, ok := session.FromContext(ctx); ok {
		path = sess.Resolve(path)
	}
	if input.Host.IsLocal() {
		if ok, _ := s.fs.Exists(ctx, path); !ok {
			return fmt.Errorf("%w: %s", types.ErrPathResolution, path)
		}
	}
	command := commandLine(path, input.Args)
	return s.invoke(ctx, input.Host, input.Env, command, input.Workdir, input.TimeoutMs, output)
}

// RunScript invokes an external interpreter with a script file argument
func (s *Service) RunScript(ctx context.Context, input *RunScriptInput, output *Output) error {
	input.Init()
	if input.File == "" {
		return fmt.Errorf("%w: file is required", types.ErrMalformedArgument)
	}
	file := input.File
	if sess, ok := session.FromContext(ctx); ok {
		file = sess.Resolve(file)
	}
	if input.Host.IsLocal() {
		if ok, _ := s.fs.Exists(ctx, file); !ok {
			return fmt.Errorf("%w: %s", types.ErrPathResolution, file)
		}
	}
	command := commandLine(input.Interpreter, []string{file})
	return s.invoke(ctx, input.Host, input.Env, command, "", input.TimeoutMs, output)
}

func (s *Service) invoke(ctx context.Context, host *system.Host, env map[string]string, command, workdir string, timeoutMs int, output *Output) error {
	aRunner, err := s.getRunner(ctx, host, env)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrExternalInvocation, err)
	}
	if workdir != "" {
		if _, _, err := aRunner.Run(ctx, fmt.Sprintf("cd %s", workdir)); err != nil {
			return fmt.Errorf("%w: failed to change directory: %v", types.ErrExternalInvocation, err)
		}
	}

	timeout := time.Duration(timeoutMs) * time.Millisecond
	if timeout == 0 {
		timeout = time.Minute
	}
	started := time.Now()
	stdout, status, err := aRunner.Run(ctx, command, runner.WithTimeout(int(timeout.Milliseconds())))
	elapsed := time.Since(started)
	if elapsed > timeout && err == nil {
		err = fmt.Errorf("command %v timed out after %s", command, elapsed)
	}

	output.Command = command
	output.Status = status
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrExternalInvocation, command, err)
	}
	if status != 0 {
		output.Stderr = stdout
		return fmt.Errorf("%w: %s exited with status %d", types.ErrExternalInvocation, command, status)
	}
	output.Stdout = stdout
	return nil
}

// getRunner retrieves an existing runner for the host or opens a new one
func (s *Service) getRunner(ctx context.Context, host *system.Host, env map[string]string) (Runner, error) {
	key := host.URL

	s.mux.Lock()
	defer s.mux.Unlock()

	if existing, ok := s.sessions[key]; ok {
		return existing, nil
	}
	opened, err := s.open(ctx, host, env)
	if err != nil {
		return nil, err
	}
	s.sessions[key] = opened
	return opened, nil
}

func openRunner(ctx context.Context, host *system.Host, env map[string]string) (Runner, error) {
	envOptions := []runner.Option{}
	if len(env) > 0 {
		envOptions = append(envOptions, runner.WithEnvironment(env))
	}
	if host.IsLocal() {
		return gosh.New(ctx, local.New(envOptions...))
	}

	config, err := sshConfig(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("failed to get SSH config: %w", err)
	}
	sshHost := url.Host(host.URL)
	if !strings.Contains(sshHost, ":") {
		sshHost += ":22"
	}
	return gosh.New(ctx, rssh.New(sshHost, config, envOptions...))
}

// sshConfig creates an SSH config from the host's named credentials
func sshConfig(ctx context.Context, host *system.Host) (*ssh.ClientConfig, error) {
	credentials := host.Credentials
	if credentials == "" {
		credentials = "localhost"
	}
	secrets := secret.New()
	generic, err := secrets.GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}

// Close releases all runners held by this service
func (s *Service) Close(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	var errs []string
	for id, aRunner := range s.sessions {
		if err := aRunner.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("failed to close session %s: %v", id, err))
		}
	}
	s.sessions = make(map[string]Runner)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %s", strings.Join(errs, "; "))
	}
	return nil
}

func commandLine(path string, args []string) string {
	parts := make([]string, 0, 1+len(args))
	parts = append(parts, quoteIfNeeded(path))
	for _, arg := range args {
		parts = append(parts, quoteIfNeeded(arg))
	}
	return strings.Join(parts, " ")
}

func quoteIfNeeded(text string) string {
	if strings.ContainsAny(text, " \t") {
		return `"` + text + `"`
	}
	return text
}
