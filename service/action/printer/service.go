package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/types"
)

const name = "printer"

// Service prints script log messages
type Service struct {
	writer io.Writer
}

type Input struct {
	Message string `json:"message"`
}

// Output represents output from print
type Output struct{}

// New creates a new printer service
func New() *Service {
	return &Service{writer: os.Stdout}
}

// NewWithWriter creates a printer writing to the supplied writer
func NewWithWriter(writer io.Writer) *Service {
	return &Service{writer: writer}
}

// Name returns the service name
func (s *Service) Name() string {
	return name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "print",
			Description: "Prints the given message to standard output.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&Output{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "print":
		return s.print, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) print(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	_, err := fmt.Fprintln(s.writer, input.Message)
	return err
}
