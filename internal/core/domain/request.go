package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// CreateQueryRequest is the serialized form of the query definition form,
// shaped for the backend's creation endpoint.
type CreateQueryRequest struct {
	Name         string
	Location     GeoPoint
	RadiusKm     int
	StartDate    string // yyyy-MM-dd
	EndDate      string // yyyy-MM-dd
	FrequencyMin int
	MaxTweets    int
	Keywords     []string
}

// QueryString encodes the request the way the backend expects it:
// name=&loc=lat,lon,<radius>km&start=&end=&freq=&max=&keywords=.
// Keywords are percent-encoded individually and comma-joined so that
// decoding and splitting reproduces the original list in order.
func (r CreateQueryRequest) QueryString() string {
	encoded := make([]string, len(r.Keywords))
	for i, kw := range r.Keywords {
		encoded[i] = url.QueryEscape(kw)
	}

	loc := strconv.FormatFloat(r.Location.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(r.Location.Longitude, 'f', -1, 64) + "," +
		strconv.Itoa(r.RadiusKm) + "km"

	var b strings.Builder
	b.WriteString("name=" + url.QueryEscape(r.Name))
	b.WriteString("&loc=" + loc)
	b.WriteString("&start=" + r.StartDate)
	b.WriteString("&end=" + r.EndDate)
	b.WriteString("&freq=" + strconv.Itoa(r.FrequencyMin))
	b.WriteString("&max=" + strconv.Itoa(r.MaxTweets))
	b.WriteString("&keywords=" + strings.Join(encoded, ","))
	return b.String()
}
