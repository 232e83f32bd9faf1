package enrich

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/tmdb"
)

// Store persists enrichment results. Both writes are partial single
// document updates, the store's per-document atomicity is the only
// consistency relied on.
type Store interface {
	SetProviderID(ctx context.Context, id primitive.ObjectID, tmdbID int64) error
	ApplyFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// Enricher fills missing catalog fields from TMDb with a
// fill-only-if-missing merge. It never overwrites admin-entered data
// and every failure degrades to rendering existing data.
type Enricher struct {
	api   *tmdb.Api
	store Store
}

// New returns nil when the api is nil (no key configured), callers
// treat a nil enricher as enrichment disabled.
func New(api *tmdb.Api, store Store) *Enricher {
	if api == nil {
		return nil
	}
	return &Enricher{
		api:   api,
		store: store,
	}
}

func CategoryFor(t models.ContentType) tmdb.Category {
	if t == models.ContentTypeSeries {
		return tmdb.CategoryTV
	}
	return tmdb.CategoryMovie
}

// Needed reports whether the item has any gap worth a network call.
// A complete item makes the whole flow a no-op.
func Needed(m *models.ContentItem) bool {
	if m.TmdbID == 0 {
		return true
	}
	return m.Poster == "" ||
		!m.HasOverview() ||
		m.ReleaseDate == "" ||
		len(m.Genres) == 0
}

// Enrich resolves the provider id if absent, fetches details and merges
// them into the item and the store. The item is mutated in lockstep with
// the persisted fields so the current render reflects them without a
// re-read. With force false a complete item performs zero network calls.
func (s *Enricher) Enrich(ctx context.Context, m *models.ContentItem, force bool) error {
	if !force && !Needed(m) {
		return nil
	}
	category := CategoryFor(m.Type)
	if m.TmdbID == 0 {
		id, err := s.api.SearchID(ctx, category, m.Title)
		if err != nil {
			return errors.Wrapf(err, "tmdb search failed for %q", m.Title)
		}
		if id == 0 {
			log.Infof("no tmdb match for %q", m.Title)
			return nil
		}
		// Persist right away so the search cost is paid at most once,
		// even if the detail fetch below fails.
		if err := s.store.SetProviderID(ctx, m.ID, id); err != nil {
			return err
		}
		m.TmdbID = id
	}
	det, err := s.api.Details(ctx, category, m.TmdbID)
	if err != nil {
		return errors.Wrapf(err, "tmdb details failed for %q", m.Title)
	}
	fields := merge(m, det, category)
	if len(fields) == 0 {
		return nil
	}
	if err := s.store.ApplyFields(ctx, m.ID, fields); err != nil {
		return err
	}
	log.Infof("enriched %q with tmdb data", m.Title)
	return nil
}

// merge applies the fill-only-if-missing policy: a remote value only
// lands where the local one is absent, empty or the sentinel. It mutates
// m and returns the update document.
func merge(m *models.ContentItem, det *tmdb.Details, category tmdb.Category) bson.M {
	fields := bson.M{}
	if m.Poster == "" {
		if poster := tmdb.PosterURL(det.PosterPath); poster != "" {
			m.Poster = poster
			fields["poster"] = poster
		}
	}
	if !m.HasOverview() && det.Overview != "" {
		m.Overview = det.Overview
		fields["overview"] = det.Overview
	}
	if m.ReleaseDate == "" {
		if date := det.Date(category); date != "" {
			m.ReleaseDate = date
			fields["release_date"] = date
		}
	}
	if m.VoteAverage == 0 && det.VoteAverage != 0 {
		m.VoteAverage = det.VoteAverage
		fields["vote_average"] = det.VoteAverage
	}
	if len(m.Genres) == 0 {
		if genres := det.GenreNames(); len(genres) > 0 {
			m.Genres = genres
			fields["genres"] = genres
		}
	}
	if m.Language == "" && det.OriginalLanguage != "" {
		m.Language = det.OriginalLanguage
		fields["original_language"] = det.OriginalLanguage
	}
	return fields
}

// TrailerKey fetches the videos listing and picks the first YouTube
// trailer. Requires a resolved provider id, otherwise the trailer is
// simply omitted.
func (s *Enricher) TrailerKey(ctx context.Context, m *models.ContentItem) (string, error) {
	if m.TmdbID == 0 {
		return "", nil
	}
	videos, err := s.api.Videos(ctx, CategoryFor(m.Type), m.TmdbID)
	if err != nil {
		return "", errors.Wrapf(err, "tmdb videos failed for %q", m.Title)
	}
	return tmdb.FindTrailer(videos), nil
}
