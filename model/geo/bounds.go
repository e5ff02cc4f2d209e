package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BoundingBox represents a WGS84 lon/lat bounding box
type BoundingBox struct {
	MinLon float64 `json:"minLon" yaml:"minLon"`
	MinLat float64 `json:"minLat" yaml:"minLat"`
	MaxLon float64 `json:"maxLon" yaml:"maxLon"`
	MaxLat float64 `json:"maxLat" yaml:"maxLat"`
}

// IsEmpty returns true when the box has no extent
func (b *BoundingBox) IsEmpty() bool {
	return b == nil || (b.MinLon == 0 && b.MinLat == 0 && b.MaxLon == 0 && b.MaxLat == 0)
}

// ExtendWith grows the box to cover the supplied box
func (b *BoundingBox) ExtendWith(other *BoundingBox) {
	if other == nil || other.IsEmpty() {
		return
	}
	if b.IsEmpty() {
		*b = *other
		return
	}
	b.MinLon = math.Min(b.MinLon, other.MinLon)
	b.MinLat = math.Min(b.MinLat, other.MinLat)
	b.MaxLon = math.Max(b.MaxLon, other.MaxLon)
	b.MaxLat = math.Max(b.MaxLat, other.MaxLat)
}

// Contains reports whether the supplied point lies within the box
func (b *BoundingBox) Contains(lon, lat float64) bool {
	if b.IsEmpty() {
		return false
	}
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("%v,%v,%v,%v", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// Tile converts a lon/lat point to slippy-map tile coordinates for a zoom
// level, see http://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
func Tile(lat, lon float64, zoom int) (int, int) {
	latRad := lat * math.Pi / 180
	n := math.Exp2(float64(zoom))
	tileX := int((lon + 180.0) / 360.0 * n)
	tileY := int((1.0 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2.0 * n)
	return tileX, tileY
}

// TileRange returns the inclusive tile span covering the box at a zoom level
func (b *BoundingBox) TileRange(zoom int) (minX, minY, maxX, maxY int) {
	left, top := Tile(b.MaxLat, b.MinLon, zoom)
	right, bottom := Tile(b.MinLat, b.MaxLon, zoom)
	return left, top, right, bottom
}

// ParseBoundingBox parses a "minLon,minLat,maxLon,maxLat" literal
func ParseBoundingBox(text string) (*BoundingBox, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bounds %q: expected minLon,minLat,maxLon,maxLat", text)
	}
	values := make([]float64, 4)
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bounds %q: %w", text, err)
		}
		values[i] = value
	}
	ret := &BoundingBox{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}
	if ret.MinLon > ret.MaxLon || ret.MinLat > ret.MaxLat {
		return nil, fmt.Errorf("invalid bounds %q: min exceeds max", text)
	}
	return ret, nil
}
