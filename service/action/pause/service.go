package pause

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/osmkit/mapscript/model/types"
)

const name = "system/pause"

// Service suspends script execution for a fixed duration
type Service struct{}

// Input defines parameters for the pause directive
type Input struct {
	// DurationMs is the pause length in milliseconds
	DurationMs int `json:"durationMs"`
}

// Output represents output from pause
type Output struct{}

// New creates a new pause service
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
			Name:        "pause",
			Description: "Suspends execution for the given number of milliseconds.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "pause":
		return s.pause, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) pause(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	if input.DurationMs <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(input.DurationMs) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
