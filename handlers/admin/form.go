package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/moviezone-io/web-ui/models"
)

// parseContentForm decodes an admin submission into a ContentItem.
// Episode rows arrive as parallel arrays, one per field name, zipped by
// positional index; unequal lengths or a row missing its number or title
// fail the whole submission instead of truncating.
func parseContentForm(v url.Values) (*models.ContentItem, error) {
	title := strings.TrimSpace(v.Get("title"))
	if title == "" {
		return nil, errors.New("title is required")
	}
	contentType := models.ContentType(v.Get("content_type"))
	if contentType == "" {
		contentType = models.ContentTypeMovie
	}
	if contentType != models.ContentTypeMovie && contentType != models.ContentTypeSeries {
		return nil, errors.Errorf("unknown content type %q", contentType)
	}
	overview := strings.TrimSpace(v.Get("overview"))
	if overview == "" {
		overview = models.NoOverview
	}
	item := &models.ContentItem{
		Title:        title,
		Type:         contentType,
		Overview:     overview,
		Poster:       strings.TrimSpace(v.Get("poster_url")),
		ReleaseDate:  strings.TrimSpace(v.Get("release_date")),
		Genres:       splitGenres(v.Get("genres")),
		PosterBadge:  strings.TrimSpace(v.Get("poster_badge")),
		IsTrending:   v.Get("is_trending") == "true",
		IsComingSoon: v.Get("is_coming_soon") == "true",
	}
	if contentType == models.ContentTypeMovie {
		item.WatchLink = strings.TrimSpace(v.Get("watch_link"))
		item.Links = movieLinks(v)
		return item, nil
	}
	episodes, err := parseEpisodes(v)
	if err != nil {
		return nil, err
	}
	item.Episodes = episodes
	return item, nil
}

// splitGenres turns the comma-separated form value into the stored list,
// trimming and dropping empties.
func splitGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

func movieLinks(v url.Values) []models.DownloadLink {
	var links []models.DownloadLink
	for _, quality := range []string{"480p", "720p", "1080p"} {
		u := strings.TrimSpace(v.Get("link_" + quality))
		if u == "" {
			continue
		}
		links = append(links, models.DownloadLink{
			Quality: quality,
			Size:    strings.TrimSpace(v.Get("size_" + quality)),
			URL:     u,
		})
	}
	return links
}

func parseEpisodes(v url.Values) ([]models.Episode, error) {
	numbers := v["episode_number"]
	titles := v["episode_title"]
	overviews := v["episode_overview"]
	watchLinks := v["episode_watch_link"]
	links480 := v["episode_link_480p"]
	links720 := v["episode_link_720p"]

	for name, arr := range map[string][]string{
		"episode_title":      titles,
		"episode_overview":   overviews,
		"episode_watch_link": watchLinks,
		"episode_link_480p":  links480,
		"episode_link_720p":  links720,
	} {
		if len(arr) != 0 && len(arr) != len(numbers) {
			return nil, errors.Errorf("episode field %v has %v rows, expected %v", name, len(arr), len(numbers))
		}
	}

	at := func(arr []string, i int) string {
		if i < len(arr) {
			return strings.TrimSpace(arr[i])
		}
		return ""
	}

	var episodes []models.Episode
	for i := range numbers {
		number, err := strconv.Atoi(strings.TrimSpace(numbers[i]))
		if err != nil {
			return nil, errors.Errorf("episode %v has an invalid number %q", i+1, numbers[i])
		}
		title := at(titles, i)
		if title == "" {
			return nil, errors.Errorf("episode %v is missing a title", i+1)
		}
		ep := models.Episode{
			Number:    number,
			Title:     title,
			Overview:  at(overviews, i),
			WatchLink: at(watchLinks, i),
		}
		if u := at(links480, i); u != "" {
			ep.Links = append(ep.Links, models.DownloadLink{Quality: "480p", URL: u})
		}
		if u := at(links720, i); u != "" {
			ep.Links = append(ep.Links, models.DownloadLink{Quality: "720p", URL: u})
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}
