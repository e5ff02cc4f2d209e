package storage

import (
	"context"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/types"
	"github.com/viant/afs"
)

const name = "system/storage"

// Service provides file system operations using viant/afs
type Service struct {
	fs afs.Service
}

// New creates a new storage service
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
			Name:        "zip",
			Description: "Archives files under a base directory into a zip file.",
			Input:       reflect.TypeOf(&ZipInput{}),
			Output:      reflect.TypeOf(&ZipOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "zip":
		return s.zip, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) zip(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ZipInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ZipOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Zip(ctx, input, output)
}
