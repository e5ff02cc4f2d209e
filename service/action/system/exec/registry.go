package exec

import (
	"context"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/types"
)

const Name = "system/exec"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "run",
			Description: "Invokes an external program with arguments and waits for it to finish.",
			Input:       reflect.TypeOf(&RunInput{}),
			Output:      reflect.TypeOf(&Output{}),
		},
		{
			Name:        "runScript",
			Description: "Invokes an external interpreter on a script file; side effects are opaque to the caller.",
			Input:       reflect.TypeOf(&RunScriptInput{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

func (s *Service) run(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RunInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*Output)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Run(ctx, input, output)
}

func (s *Service) runScript(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RunScriptInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*Output)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.RunScript(ctx, input, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "run":
		return s.run, nil
	case "runscript":
		return s.runScript, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
