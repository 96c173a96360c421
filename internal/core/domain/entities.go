package domain

import (
	"time"
)

// Query represents an active collection query: a geofence plus keyword set
// the backend polls for matching posts.
type Query struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     GeoPoint  `json:"location"`
	RadiusKm     float64   `json:"radius_km"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Keywords     []string  `json:"keywords"` // ordered, duplicates kept for display
	FrequencyMin int       `json:"frequency_min"`
	MaxTweets    int       `json:"max_tweets"`
}

// ArchivedQuery is a query whose collection run has ended. Its collected data
// stays queryable and exportable; IsPublic is the only field still mutable.
type ArchivedQuery struct {
	Query
	IsPublic bool `json:"is_public"`
}

// MediaType distinguishes the media attachment variants.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// Media is a single tweet attachment, dispatched on Type at render time.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

// Tweet is a collected post. All fields, including both scores, come from the
// backend; this tier never computes or mutates them.
type Tweet struct {
	ID                string    `json:"id"`
	QueryID           string    `json:"query_id"`
	Likes             int       `json:"likes"`
	Retweets          int       `json:"retweets"`
	Replies           int       `json:"replies"`
	Media             []Media   `json:"media"`
	CreatedAt         time.Time `json:"created_at"`
	Location          GeoPoint  `json:"location"`
	Content           string    `json:"content"`
	KeywordCount      int       `json:"keyword_count"`
	InteractionScore  float64   `json:"interaction_score"`
	RelatabilityScore float64   `json:"relatability_score"`
}

// TweetURL builds the deep link to the originating post. The backend does not
// return links; they are constructed here.
func TweetURL(id string) string {
	return "https://twitter.com/anyuser/status/" + id
}
