package querybuilder

import (
	"fmt"
	"strings"
	"time"

	"github.com/samirrijal/geowatch/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Suggested bounds for the max-tweets cap. The form surfaces them as hints;
// entry is not clamped, only Validate reports violations.
const (
	MinMaxTweets = 10
	MaxMaxTweets = 250
)

// Form holds the mutable state of the query definition form. Zero values are
// replaced by product defaults in NewForm; every field stays exactly what the
// user typed until submission.
type Form struct {
	Name         string
	RadiusKm     int
	StartDate    string // yyyy-MM-dd
	EndDate      string // yyyy-MM-dd
	FrequencyMin int
	MaxTweets    int
	Keywords     *TagInput
	Marker       *Marker
}

// defaultKeywords is the storm-watch starter set the form opens with.
var defaultKeywords = []string{
	"storm",
	"tornado",
	"twister",
	"@weathernetwork",
	"@NTP_Reports",
	"funnel cloud",
	"tornado warning",
	"hurricane",
}

// NewForm builds a form with the product defaults: a 50 km radius around the
// default map center, half-hour polling, a day-long window starting today.
func NewForm(now time.Time) *Form {
	f := &Form{
		RadiusKm:     50,
		StartDate:    now.Format(dateLayout),
		EndDate:      now.AddDate(0, 0, 1).Format(dateLayout),
		FrequencyMin: 30,
		MaxTweets:    100,
		Keywords:     NewTagInput(defaultKeywords),
	}
	f.Marker = NewMarker(domain.DefaultViewport().Center, nil)
	return f
}

// Validate reports every problem that would make the creation request
// unusable. The end date is intentionally not checked against the start
// date: the backend's behavior for inverted windows is unconfirmed.
func (f *Form) Validate() error {
	var errs []string
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name is required")
	}
	if f.RadiusKm <= 0 {
		errs = append(errs, "radius must be positive")
	}
	if _, err := time.Parse(dateLayout, f.StartDate); err != nil {
		errs = append(errs, "start date must be yyyy-MM-dd")
	}
	if _, err := time.Parse(dateLayout, f.EndDate); err != nil {
		errs = append(errs, "end date must be yyyy-MM-dd")
	}
	if f.FrequencyMin <= 0 {
		errs = append(errs, "frequency must be positive")
	}
	if f.MaxTweets < MinMaxTweets || f.MaxTweets > MaxMaxTweets {
		errs = append(errs, fmt.Sprintf("max tweets must be %d-%d", MinMaxTweets, MaxMaxTweets))
	}
	if err := f.Marker.Location().Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid query form: %s", strings.Join(errs, "; "))
	}
	return nil
}

// BuildRequest serializes the form plus the picked location into a creation
// request. The form state itself is left untouched, so a failed submission
// loses nothing.
func (f *Form) BuildRequest() domain.CreateQueryRequest {
	return domain.CreateQueryRequest{
		Name:         f.Name,
		Location:     f.Marker.Location(),
		RadiusKm:     f.RadiusKm,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		FrequencyMin: f.FrequencyMin,
		MaxTweets:    f.MaxTweets,
		Keywords:     f.Keywords.Tags(),
	}
}
