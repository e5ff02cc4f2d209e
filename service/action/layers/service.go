package layers

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/osmkit/mapscript/model/geo"
	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/viant/afs"
)

const name = "map/layers"

// Service loads data sources into the session and derives map bounds
type Service struct {
	fs afs.Service
}

// LoadInput defines parameters for the load-source directive
type LoadInput struct {
	Location string `json:"location" description:"path of the data source to load"`
	// Bounds optionally declares the source extent as minLon,minLat,maxLon,maxLat;
	// the source format itself is opaque to the interpreter
	Bounds string `json:"bounds,omitempty"`
}

// LoadOutput describes the loaded layer
type LoadOutput struct {
	Location string `json:"location,omitempty"`
	Index    int    `json:"index,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// SetGeoBoundsInput defines parameters for the set-geo-bounds directive
type SetGeoBoundsInput struct {
	// Source is the 1-based index of a previously loaded layer
	Source int `json:"source,omitempty"`
	// Bounds sets the extent literally instead of from a source index
	Bounds string `json:"bounds,omitempty"`
}

// SetGeoBoundsOutput reports the active bounds
type SetGeoBoundsOutput struct {
	Bounds *geo.BoundingBox `json:"bounds,omitempty"`
}

// New creates a new layers service
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
			Name:        "load",
			Description: "Loads a data source into the session layer list; loading the same path twice yields two layers.",
			Input:       reflect.TypeOf(&LoadInput{}),
			Output:      reflect.TypeOf(&LoadOutput{}),
		},
		{
			Name:        "setGeoBounds",
			Description: "Sets the session geographic bounds from a loaded source index or a literal extent.",
			Input:       reflect.TypeOf(&SetGeoBoundsInput{}),
			Output:      reflect.TypeOf(&SetGeoBoundsOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "load":
		return s.load, nil
	case "setgeobounds":
		return s.setGeoBounds, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) load(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*LoadInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*LoadOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Load(ctx, input, output)
}

// Load appends the data source at the given location to the session
func (s *Service) Load(ctx context.Context, input *LoadInput, output *LoadOutput) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("session not present in context")
	}
	if input.Location == "" {
		return fmt.Errorf("%w: location is required", types.ErrMalformedArgument)
	}
	location := sess.Resolve(input.Location)
	object, err := s.fs.Object(ctx, location)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrPathResolution, location)
	}
	if object.IsDir() {
		return fmt.Errorf("%w: %s is a directory", types.ErrPathResolution, location)
	}

	layer := &session.Layer{Location: location}
	if input.Bounds != "" {
		bounds, err := geo.ParseBoundingBox(input.Bounds)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrMalformedArgument, err)
		}
		layer.Bounds = bounds
	}
	output.Location = location
	output.Size = object.Size()
	output.Index = sess.AddLayer(layer)
	return nil
}

func (s *Service) setGeoBounds(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SetGeoBoundsInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SetGeoBoundsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.SetGeoBounds(ctx, input, output)
}

// SetGeoBounds derives the session bounds from a source index or literal
func (s *Service) SetGeoBounds(ctx context.Context, input *SetGeoBoundsInput, output *SetGeoBoundsOutput) error {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return fmt.Errorf("session not present in context")
	}
	switch {
	case input.Bounds != "":
		bounds, err := geo.ParseBoundingBox(input.Bounds)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrMalformedArgument, err)
		}
		sess.SetBounds(bounds)
		output.Bounds = bounds
	case input.Source > 0:
		layer, ok := sess.Layer(input.Source)
		if !ok {
			return fmt.Errorf("%w: source index %d out of range (1..%d)", types.ErrMalformedArgument, input.Source, len(sess.Layers()))
		}
		if layer.Bounds == nil {
			return fmt.Errorf("source %d (%s) declares no bounds", input.Source, layer.Location)
		}
		sess.SetBounds(layer.Bounds)
		output.Bounds = layer.Bounds
	default:
		return fmt.Errorf("%w: either source or bounds is required", types.ErrMalformedArgument)
	}
	return nil
}
