package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	tmdbApiKeyFlag = "tmdb-api-key"
	tmdbApiUrlFlag = "tmdb-api-url"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   tmdbApiUrlFlag,
			Usage:  "tmdb api base url",
			Value:  "https://api.themoviedb.org/3",
			EnvVar: "TMDB_API_URL",
		},
		cli.StringFlag{
			Name:   tmdbApiKeyFlag,
			Usage:  "tmdb api key",
			Value:  "",
			EnvVar: "TMDB_API_KEY",
		},
	)
}

// Category is TMDb's content namespace, movie or tv.
type Category string

const (
	CategoryMovie Category = "movie"
	CategoryTV    Category = "tv"
)

func (c Category) String() string {
	return string(c)
}

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// requestTimeout bounds every outbound call so a slow provider cannot
// stall a page render.
const requestTimeout = 5 * time.Second

type searchResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Details struct {
	ID               int64   `json:"id"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
	Genres           []Genre `json:"genres"`
	GenreIDs         []int64 `json:"genre_ids"`
}

// Date returns the release date for movies, first air date for tv.
func (s *Details) Date(category Category) string {
	if category == CategoryTV {
		return s.FirstAirDate
	}
	return s.ReleaseDate
}

// GenreNames prefers the embedded genre objects; responses carrying only
// ids fall through the static table.
func (s *Details) GenreNames() []string {
	var names []string
	for _, g := range s.Genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	if len(names) > 0 {
		return names
	}
	for _, id := range s.GenreIDs {
		if name, ok := genreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

type Video struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Site string `json:"site"`
}

type videosResponse struct {
	Results []Video `json:"results"`
}

// FindTrailer picks the first YouTube trailer out of a videos listing.
// Absence is not an error, the page just omits the trailer section.
func FindTrailer(videos []Video) string {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v.Key
		}
	}
	return ""
}

// PosterURL builds a full image URL from a TMDb path fragment.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

type Api struct {
	url            string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
}

// New returns nil when no api key is configured, which disables
// enrichment entirely.
func New(c *cli.Context, cl *http.Client) *Api {
	u := c.String(tmdbApiUrlFlag)
	key := c.String(tmdbApiKeyFlag)
	if key == "" {
		return nil
	}
	log.Infof("tmdb api endpoint %v", u)
	return NewWithURL(u, key, cl)
}

func NewWithURL(url string, key string, cl *http.Client) *Api {
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		q := r.URL.Query()
		q.Set("api_key", key)
		r.URL.RawQuery = q.Encode()
		return r, nil
	}
	return &Api{
		url:            url,
		cl:             cl,
		prepareRequest: prepareRequest,
	}
}

func (api *Api) get(ctx context.Context, path string, query map[string]string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", api.url+path, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	q := req.URL.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	req, err = api.prepareRequest(req)
	if err != nil {
		return errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("tmdb returned status %v for %v", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// SearchID resolves a title to the first matching provider id.
// Zero means no results.
func (api *Api) SearchID(ctx context.Context, category Category, title string) (int64, error) {
	var res searchResponse
	err := api.get(ctx, fmt.Sprintf("/search/%v", category), map[string]string{
		"query": title,
	}, &res)
	if err != nil {
		return 0, err
	}
	if len(res.Results) == 0 {
		return 0, nil
	}
	return res.Results[0].ID, nil
}

func (api *Api) Details(ctx context.Context, category Category, id int64) (*Details, error) {
	var det Details
	err := api.get(ctx, fmt.Sprintf("/%v/%v", category, id), nil, &det)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (api *Api) Videos(ctx context.Context, category Category, id int64) ([]Video, error) {
	var res videosResponse
	err := api.get(ctx, fmt.Sprintf("/%v/%v/videos", category, id), nil, &res)
	if err != nil {
		return nil, err
	}
	return res.Results, nil
}
