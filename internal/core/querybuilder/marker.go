package querybuilder

import "github.com/samirrijal/geowatch/internal/core/domain"

// Marker is the draggable pin of the query location picker. It performs no
// network I/O and no validation: whatever point the drag ends on is recorded
// verbatim and handed to the move callback. The coordinate popup re-opens on
// every move so the user always sees where the pin landed.
type Marker struct {
	location  domain.GeoPoint
	popupOpen bool
	onMove    func(domain.GeoPoint)
}

// NewMarker places the pin and registers the move callback. The popup starts
// open, showing the initial coordinates.
func NewMarker(at domain.GeoPoint, onMove func(domain.GeoPoint)) *Marker {
	return &Marker{location: at, popupOpen: true, onMove: onMove}
}

// DragEnd records the drag's terminal position and fires the callback exactly
// once, synchronously. Intermediate drag frames never reach this method.
func (m *Marker) DragEnd(to domain.GeoPoint) {
	m.location = to
	m.popupOpen = true
	if m.onMove != nil {
		m.onMove(to)
	}
}

// ClosePopup dismisses the coordinate popup until the next move.
func (m *Marker) ClosePopup() { m.popupOpen = false }

// Location returns the pin's current position.
func (m *Marker) Location() domain.GeoPoint { return m.location }

// PopupOpen reports whether the coordinate popup is showing.
func (m *Marker) PopupOpen() bool { return m.popupOpen }
