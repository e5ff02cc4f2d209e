package nav

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/viant/afs"
)

const name = "map/nav"

// Service mutates the session working directory
type Service struct {
	fs afs.Service
}

// ChangeDirInput defines parameters for the change-directory directive
type ChangeDirInput struct {
	Dir string `json:"dir" description:"relative directory segment appended to the working directory"`
}

// ChangeDirOutput reports the resulting working directory
type ChangeDirOutput struct {
	WorkDir string `json:"workDir,omitempty"`
}

// UseScriptDirInput has no parameters
type UseScriptDirInput struct{}

// UseScriptDirOutput reports the directory relative paths now resolve against
type UseScriptDirOutput struct {
	ScriptDir string `json:"scriptDir,omitempty"`
}

// New creates a new nav service
func New() *Service {
	return &Service{fs: afs.New()}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "changeDir",
			Description: "Appends a relative segment to the session working directory; the target must exist.",
			Input:       reflect.TypeOf(&ChangeDirInput{}),
			Output:      reflect.TypeOf(&ChangeDirOutput{}),
		},
		{
			Name:        "useScriptDir",
			Description: "Switches the session into relative-path mode: subsequent relative paths resolve against the script's own directory.",
			Input:       reflect.TypeOf(&UseScriptDirInput{}),
			Output:      reflect.TypeOf(&UseScriptDirOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "changedir":
		return s.changeDir, nil
	case "usescriptdir":
		return s.useScriptDir, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) changeDir(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ChangeDirInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ChangeDirOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.ChangeDir(ctx, input, output)
}

// ChangeDir updates the session working directory
func (s *Service) ChangeDir(ctx context.Context, input *ChangeDirInput, output *ChangeDirOutput) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("session not present in context")
	}
	if input.Dir == "" {
		return fmt.Errorf("%w: dir is required", types.ErrMalformedArgument)
	}
	target := sess.ResolveDir(input.Dir)
	if ok, _ := s.fs.Exists(ctx, target); !ok {
		return fmt.Errorf("%w: %s", types.ErrPathResolution, target)
	}
	sess.SetWorkDir(target)
	output.WorkDir = target
	return nil
}

func (s *Service) useScriptDir(ctx context.Context, in, out interface{}) error {
	if _, ok := in.(*UseScriptDirInput); !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*UseScriptDirOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("session not present in context")
	}
	sess.UseScriptDir()
	output.ScriptDir = sess.ScriptDir()
	return nil
}
