package layers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/osmkit/mapscript/model/types"
	"github.com/osmkit/mapscript/runtime/session"
	"github.com/stretchr/testify/assert"
)

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "israel.osm.pbf")
	assert.Nil(t, os.WriteFile(source, []byte("pbf"), 0o644))

	sess := session.New("load-test", session.WithWorkDir(dir))
	ctx := session.WithContext(context.Background(), sess)
	service := New()

	output := &LoadOutput{}
	err := service.Load(ctx, &LoadInput{Location: "israel.osm.pbf"}, output)
	assert.Nil(t, err)
	assert.Equal(t, 1, output.Index)
	assert.Equal(t, source, output.Location)

	// loading the same source again stacks a second layer
	again := &LoadOutput{}
	assert.Nil(t, service.Load(ctx, &LoadInput{Location: "israel.osm.pbf"}, again))
	assert.Equal(t, 2, again.Index)
	assert.Equal(t, 2, len(sess.Layers()))

	err = service.Load(ctx, &LoadInput{Location: "missing.osm.pbf"}, &LoadOutput{})
	assert.True(t, errors.Is(err, types.ErrPathResolution))
}

func TestService_SetGeoBounds(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "israel.osm.pbf")
	assert.Nil(t, os.WriteFile(source, []byte("pbf"), 0o644))

	sess := session.New("bounds-test", session.WithWorkDir(dir))
	ctx := session.WithContext(context.Background(), sess)
	service := New()

	// layer with declared bounds
	loaded := &LoadOutput{}
	err := service.Load(ctx, &LoadInput{Location: "israel.osm.pbf", Bounds: "34.2,29.4,35.9,33.4"}, loaded)
	assert.Nil(t, err)

	output := &SetGeoBoundsOutput{}
	assert.Nil(t, service.SetGeoBounds(ctx, &SetGeoBoundsInput{Source: loaded.Index}, output))
	if assert.NotNil(t, sess.Bounds()) {
		assert.Equal(t, 34.2, sess.Bounds().MinLon)
		assert.Equal(t, 33.4, sess.Bounds().MaxLat)
	}

	// a literal extent overrides the layer bounds
	assert.Nil(t, service.SetGeoBounds(ctx, &SetGeoBoundsInput{Bounds: "35.0,32.0,35.5,32.5"}, &SetGeoBoundsOutput{}))
	assert.Equal(t, 35.0, sess.Bounds().MinLon)

	// out of range source index
	err = service.SetGeoBounds(ctx, &SetGeoBoundsInput{Source: 9}, &SetGeoBoundsOutput{})
	assert.True(t, errors.Is(err, types.ErrMalformedArgument))

	// layer without declared bounds
	plain := &LoadOutput{}
	assert.Nil(t, service.Load(ctx, &LoadInput{Location: "israel.osm.pbf"}, plain))
	err = service.SetGeoBounds(ctx, &SetGeoBoundsInput{Source: plain.Index}, &SetGeoBoundsOutput{})
	assert.NotNil(t, err)
}
