// internal/mapkit/surface.go
package mapkit

import "strconv"

// Coordinate is a geographic position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Format renders a coordinate component to the 6 decimal places the
// registration form fields expect.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Marker is the in-memory projection of one map pin. The external map
// engine is a black box; handlers ship Marker values to it and tests
// assert on them directly.
type Marker struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Position  Coordinate  `json:"position"`
	Icon      *MarkerIcon `json:"icon,omitempty"`
	Category  string      `json:"category,omitempty"`
	DetailURL string      `json:"detail_url,omitempty"`
	Draggable bool        `json:"draggable"`
	Visible   bool        `json:"visible"`
}

// Click resolves the navigation target of a marker click. An empty
// string means the click is a no-op.
func (m *Marker) Click() string {
	return m.DetailURL
}

// Surface models the map viewport plus its marker set.
type Surface struct {
	Center  Coordinate `json:"center"`
	Zoom    int        `json:"zoom"`
	Markers []*Marker  `json:"markers"`
}

// NewSurface creates a surface centered on the given coordinate.
func NewSurface(center Coordinate, zoom int) *Surface {
	return &Surface{Center: center, Zoom: zoom}
}

// Add registers a marker on the surface and returns it.
func (s *Surface) Add(m *Marker) *Marker {
	m.Visible = true
	s.Markers = append(s.Markers, m)
	return m
}

// Recenter moves the viewport.
func (s *Surface) Recenter(center Coordinate, zoom int) {
	s.Center = center
	s.Zoom = zoom
}

// VisibleCount reports how many markers are currently shown.
func (s *Surface) VisibleCount() int {
	n := 0
	for _, m := range s.Markers {
		if m.Visible {
			n++
		}
	}
	return n
}
