package settings

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
)

const name = "map/settings"

// Service maintains the session settings map
type Service struct{}

// SetInput defines parameters for the set-setting directive
type SetInput struct {
	Name string `json:"name" description:"setting name, e.g. map.decoration.grid"`
	// Value may be a bool, an enum string, a number or a percentage
	Value interface{} `json:"value"`
}

// SetOutput reports the previous value, if any
type SetOutput struct {
	Previous interface{} `json:"previous,omitempty"`
	Existed  bool        `json:"existed,omitempty"`
}

// New creates a new settings service
func New() *Service {
	return &Service{}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "set",
			Description: "Sets a named rendering setting; setting the same name twice keeps the last value.",
			Input:       reflect.TypeOf(&SetInput{}),
			Output:      reflect.TypeOf(&SetOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "set":
		return s.set, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) set(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SetInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SetOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Set(ctx, input, output)
}

// Set updates settings[name] = value, last write wins
func (s *Service) Set(ctx context.Context, input *SetInput, output *SetOutput) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("session not present in context")
	}
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", types.ErrMalformedArgument)
	}
	output.Previous, output.Existed = sess.Setting(input.Name)
	sess.SetSetting(input.Name, input.Value)
	return nil
}
