package session

import (
	"github.com/osmkit/mapscript/model/geo"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSession_SetSetting(t *testing.T) {
	s := New("test")

	var events []string
	s.RegisterListeners(func(_ *Session, name string, oldValue, newValue interface{}) {
		events = append(events, name)
	})

	s.SetSetting("map.decoration.grid", true)
	s.SetSetting("map.decoration.grid", false)

	value, ok := s.Setting("map.decoration.grid")
	assert.True(t, ok)
	assert.Equal(t, false, value, "last write wins")
	assert.Equal(t, []string{"map.decoration.grid", "map.decoration.grid"}, events)
}

func TestSession_ChangeDir(t *testing.T) {
	s := New("test", WithWorkDir("/maps/project/scripts"))
	s.ChangeDir("..")
	s.ChangeDir("..")
	assert.Equal(t, "/maps", s.WorkDir())

	s.ChangeDir("cache")
	assert.Equal(t, "/maps/cache", s.WorkDir())
}

func TestSession_ResolveDir(t *testing.T) {
	s := New("test", WithWorkDir("/maps/project"))
	assert.Equal(t, "/maps/project/cache", s.ResolveDir("cache"))
	assert.Equal(t, "/maps/project", s.WorkDir(), "preview does not commit")

	s.SetWorkDir("/maps/project/cache")
	assert.Equal(t, "/maps/project/cache", s.WorkDir())
}

func TestSession_Resolve(t *testing.T) {
	s := New("test",
		WithWorkDir("/maps/project"),
		WithScriptDir("/maps/project/scripts"))

	assert.Equal(t, "/maps/project/Cache/a.pbf", s.Resolve("Cache/a.pbf"))
	assert.Equal(t, "/abs/a.pbf", s.Resolve("/abs/a.pbf"))
	assert.Equal(t, "s3://bucket/a.pbf", s.Resolve("s3://bucket/a.pbf"))

	s.UseScriptDir()
	assert.Equal(t, "/maps/project/scripts/Cache/a.pbf", s.Resolve("Cache/a.pbf"))
}

func TestSession_Layers(t *testing.T) {
	s := New("test")
	first := &Layer{Location: "/maps/a.pbf", Bounds: &geo.BoundingBox{MinLon: 34, MinLat: 29, MaxLon: 36, MaxLat: 33}}

	assert.Equal(t, 1, s.AddLayer(first))
	assert.Equal(t, 2, s.AddLayer(&Layer{Location: "/maps/contours.dem"}))
	// duplicates accumulate, sequence semantics
	assert.Equal(t, 3, s.AddLayer(&Layer{Location: "/maps/a.pbf"}))
	assert.Equal(t, 3, len(s.Layers()))

	layer, ok := s.Layer(1)
	assert.True(t, ok)
	assert.Equal(t, first, layer)

	_, ok = s.Layer(4)
	assert.False(t, ok)
	_, ok = s.Layer(0)
	assert.False(t, ok)
}
