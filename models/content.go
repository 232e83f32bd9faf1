package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

func (t ContentType) String() string {
	return string(t)
}

// NoOverview marks an overview that has not been set yet, as opposed to
// a genuinely empty admin input.
const NoOverview = "No overview available."

type DownloadLink struct {
	Quality string `bson:"quality" json:"quality"`
	Size    string `bson:"size,omitempty" json:"size,omitempty"`
	URL     string `bson:"url" json:"url"`
}

type Episode struct {
	Number    int            `bson:"episode_number" json:"episode_number"`
	Title     string         `bson:"title" json:"title"`
	Overview  string         `bson:"overview,omitempty" json:"overview,omitempty"`
	WatchLink string         `bson:"watch_link,omitempty" json:"watch_link,omitempty"`
	Links     []DownloadLink `bson:"links,omitempty" json:"links,omitempty"`
}

// ContentItem is one catalog record, movie or series. The content type
// decides which payload family (watch link + download links vs episodes)
// is authoritative; the other one stays unset.
type ContentItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Type         ContentType        `bson:"type" json:"type"`
	Overview     string             `bson:"overview,omitempty" json:"overview,omitempty"`
	Poster       string             `bson:"poster,omitempty" json:"poster,omitempty"`
	ReleaseDate  string             `bson:"release_date,omitempty" json:"release_date,omitempty"`
	VoteAverage  float64            `bson:"vote_average,omitempty" json:"vote_average,omitempty"`
	Genres       []string           `bson:"genres,omitempty" json:"genres,omitempty"`
	Language     string             `bson:"original_language,omitempty" json:"original_language,omitempty"`
	PosterBadge  string             `bson:"poster_badge,omitempty" json:"poster_badge,omitempty"`
	IsTrending   bool               `bson:"is_trending" json:"is_trending"`
	IsComingSoon bool               `bson:"is_coming_soon" json:"is_coming_soon"`
	TmdbID       int64              `bson:"tmdb_id,omitempty" json:"tmdb_id,omitempty"`

	WatchLink string         `bson:"watch_link,omitempty" json:"watch_link,omitempty"`
	Links     []DownloadLink `bson:"links,omitempty" json:"links,omitempty"`

	Episodes []Episode `bson:"episodes,omitempty" json:"episodes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Year returns the display year, the first four characters of the
// release date.
func (s *ContentItem) Year() string {
	if len(s.ReleaseDate) < 4 {
		return ""
	}
	return s.ReleaseDate[:4]
}

func (s *ContentItem) HasOverview() bool {
	return s.Overview != "" && s.Overview != NoOverview
}

func (s *ContentItem) GenreList() string {
	return strings.Join(s.Genres, " • ")
}

// SortedEpisodes returns episodes ordered by number for display.
// Numbers are not guaranteed unique; ties keep submission order.
func (s *ContentItem) SortedEpisodes() []Episode {
	eps := make([]Episode, len(s.Episodes))
	copy(eps, s.Episodes)
	sort.SliceStable(eps, func(i, j int) bool {
		return eps[i].Number < eps[j].Number
	})
	return eps
}

func (s *ContentItem) FindEpisode(number int) *Episode {
	for i := range s.Episodes {
		if s.Episodes[i].Number == number {
			return &s.Episodes[i]
		}
	}
	return nil
}
