package querybuilder_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/core/querybuilder"
)

func TestMarker_DragEnd(t *testing.T) {
	var calls []domain.GeoPoint
	m := querybuilder.NewMarker(domain.GeoPoint{Longitude: -79.347, Latitude: 43.651}, func(p domain.GeoPoint) {
		calls = append(calls, p)
	})

	m.DragEnd(domain.GeoPoint{Longitude: -80.0, Latitude: 44.0})

	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 move callback, got %d", len(calls))
	}
	if calls[0].Longitude != -80.0 || calls[0].Latitude != 44.0 {
		t.Errorf("callback got %+v, want {-80, 44}", calls[0])
	}
	if got := m.Location(); got != calls[0] {
		t.Errorf("marker location %+v does not match callback %+v", got, calls[0])
	}
}

func TestMarker_PopupReopensOnMove(t *testing.T) {
	m := querybuilder.NewMarker(domain.GeoPoint{}, nil)
	m.ClosePopup()
	if m.PopupOpen() {
		t.Fatal("popup should be closed after ClosePopup")
	}
	m.DragEnd(domain.GeoPoint{Longitude: 1, Latitude: 1})
	if !m.PopupOpen() {
		t.Error("popup should re-open after a drag")
	}
}

func TestMarker_NoClamping(t *testing.T) {
	m := querybuilder.NewMarker(domain.GeoPoint{}, nil)
	m.DragEnd(domain.GeoPoint{Longitude: -200, Latitude: 95})
	if got := m.Location(); got.Longitude != -200 || got.Latitude != 95 {
		t.Errorf("marker must record out-of-range drags verbatim, got %+v", got)
	}
}

func TestTagInput_DelimiterAndRemoval(t *testing.T) {
	in := querybuilder.NewTagInput([]string{"storm"})

	for _, key := range []string{"t", "o", "r", "n", "a", "d", "o"} {
		if in.Keystroke(key) {
			t.Errorf("plain key %q must propagate", key)
		}
	}
	if !in.Keystroke(querybuilder.KeyEnter) {
		t.Fatal("Enter must be consumed, not propagated to form submit")
	}

	tags := in.Tags()
	if len(tags) != 2 || tags[0] != "storm" || tags[1] != "tornado" {
		t.Fatalf("tags = %v, want [storm tornado]", tags)
	}

	// Duplicates are allowed and order preserved.
	for _, key := range []string{"s", "t", "o", "r", "m"} {
		in.Keystroke(key)
	}
	in.Keystroke(querybuilder.KeyComma)
	if tags := in.Tags(); len(tags) != 3 || tags[2] != "storm" {
		t.Fatalf("expected duplicate tag kept in order, got %v", tags)
	}

	in.Remove(0)
	if tags := in.Tags(); len(tags) != 2 || tags[0] != "tornado" {
		t.Fatalf("tags after removal = %v, want [tornado storm]", tags)
	}
}

func TestTagInput_EmptyCommitDropped(t *testing.T) {
	in := querybuilder.NewTagInput(nil)
	in.Keystroke(querybuilder.KeyEnter)
	in.Keystroke(" ")
	in.Keystroke(querybuilder.KeyEnter)
	if tags := in.Tags(); len(tags) != 0 {
		t.Errorf("blank commits must not add tags, got %v", tags)
	}
}

func TestForm_Defaults(t *testing.T) {
	now := time.Date(2023, 6, 7, 12, 0, 0, 0, time.UTC)
	f := querybuilder.NewForm(now)

	if f.RadiusKm != 50 || f.FrequencyMin != 30 || f.MaxTweets != 100 {
		t.Errorf("unexpected numeric defaults: %+v", f)
	}
	if f.StartDate != "2023-06-07" || f.EndDate != "2023-06-08" {
		t.Errorf("dates = %s..%s, want 2023-06-07..2023-06-08", f.StartDate, f.EndDate)
	}
	if loc := f.Marker.Location(); loc.Longitude != -79.347 || loc.Latitude != 43.651 {
		t.Errorf("default location = %+v", loc)
	}
	if tags := f.Keywords.Tags(); len(tags) == 0 || tags[0] != "storm" {
		t.Errorf("default keywords missing, got %v", tags)
	}
}

func TestForm_BuildRequest_KeywordRoundTrip(t *testing.T) {
	f := querybuilder.NewForm(time.Date(2023, 6, 7, 0, 0, 0, 0, time.UTC))
	f.Name = "London, ON - 2021/06/07"
	f.RadiusKm = 50
	f.MaxTweets = 100
	f.Keywords = querybuilder.NewTagInput([]string{"storm", "tornado"})

	qs := f.BuildRequest().QueryString()

	vals, err := url.ParseQuery(qs)
	if err != nil {
		t.Fatalf("query string does not parse: %v", err)
	}
	if got := vals.Get("name"); got != "London, ON - 2021/06/07" {
		t.Errorf("name = %q", got)
	}
	if got := vals.Get("loc"); got != "43.651,-79.347,50km" {
		t.Errorf("loc = %q, want 43.651,-79.347,50km", got)
	}
	if got := vals.Get("max"); got != "100" {
		t.Errorf("max = %q, want 100", got)
	}

	// Percent-decode then split must reproduce the original order.
	var decoded []string
	for _, part := range strings.Split(vals.Get("keywords"), ",") {
		kw, err := url.QueryUnescape(part)
		if err != nil {
			t.Fatalf("keyword %q does not decode: %v", part, err)
		}
		decoded = append(decoded, kw)
	}
	if len(decoded) != 2 || decoded[0] != "storm" || decoded[1] != "tornado" {
		t.Errorf("decoded keywords = %v, want [storm tornado]", decoded)
	}
}

func TestForm_KeywordsEncodedIndividually(t *testing.T) {
	f := querybuilder.NewForm(time.Now())
	f.Name = "x"
	f.Keywords = querybuilder.NewTagInput([]string{"funnel cloud", "@NTP_Reports"})

	qs := f.BuildRequest().QueryString()
	if !strings.Contains(qs, "keywords=funnel+cloud,%40NTP_Reports") {
		t.Errorf("keywords not encoded per element: %s", qs)
	}
}

func TestForm_Validate(t *testing.T) {
	f := querybuilder.NewForm(time.Now())
	f.Name = "ok"
	if err := f.Validate(); err != nil {
		t.Fatalf("default form with a name should validate, got %v", err)
	}

	f.MaxTweets = 9
	if err := f.Validate(); err == nil {
		t.Error("max tweets below 10 must fail validation")
	}
	f.MaxTweets = 100

	f.Marker.DragEnd(domain.GeoPoint{Longitude: -200, Latitude: 0})
	if err := f.Validate(); err == nil {
		t.Error("out-of-range location must fail validation")
	}
}

// End date before start date is accepted on purpose; the backend's handling
// of inverted windows is unconfirmed, so the form does not second-guess it.
func TestForm_InvertedDatesAccepted(t *testing.T) {
	f := querybuilder.NewForm(time.Now())
	f.Name = "ok"
	f.StartDate = "2023-06-08"
	f.EndDate = "2023-06-07"
	if err := f.Validate(); err != nil {
		t.Errorf("inverted dates should pass validation, got %v", err)
	}
}
