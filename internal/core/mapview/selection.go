package mapview

import (
	"fmt"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

// Popup is the inspect bubble for one rendered point. Score is shown to two
// decimals; Link is the deep link to the originating post.
type Popup struct {
	Location domain.GeoPoint `json:"location"`
	Score    float64         `json:"score"`
	Label    string          `json:"label"`
	Link     string          `json:"link"`
}

// Selection tracks the at-most-one open popup of a map view. Clicking a point
// feature replaces the current popup; clicking anything else clears it.
type Selection struct {
	popup *Popup
}

// Click handles a map click that hit the given features (nearest first).
// Feature lookups on a nil-collection view pass an empty slice and clear.
func (s *Selection) Click(features []domain.Feature) {
	if len(features) == 0 {
		s.popup = nil
		return
	}
	props, loc, ok := features[0].Point()
	if !ok {
		s.popup = nil
		return
	}
	s.popup = &Popup{
		Location: loc,
		Score:    props.Score,
		Label:    fmt.Sprintf("%.2f", props.Score),
		Link:     domain.TweetURL(props.ID),
	}
}

// Close dismisses the popup.
func (s *Selection) Close() { s.popup = nil }

// Popup returns the open popup, or nil when none is shown.
func (s *Selection) Popup() *Popup { return s.popup }
