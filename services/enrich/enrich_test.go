package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/moviezone-io/web-ui/models"
	"github.com/moviezone-io/web-ui/services/tmdb"
)

type mockStore struct {
	providerIDs []int64
	fields      []bson.M
}

func (s *mockStore) SetProviderID(ctx context.Context, id primitive.ObjectID, tmdbID int64) error {
	s.providerIDs = append(s.providerIDs, tmdbID)
	return nil
}

func (s *mockStore) ApplyFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	s.fields = append(s.fields, fields)
	return nil
}

func newTestEnricher(t *testing.T, handler http.HandlerFunc) (*Enricher, *mockStore, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	store := &mockStore{}
	api := tmdb.NewWithURL(srv.URL, "test-key", srv.Client())
	return New(api, store), store, &calls
}

func TestEnrichCompleteItemIsNoop(t *testing.T) {
	en, store, calls := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %v", r.URL.Path)
	})
	item := &models.ContentItem{
		ID:          primitive.NewObjectID(),
		Title:       "Inception",
		Type:        models.ContentTypeMovie,
		TmdbID:      27205,
		Poster:      "https://image.tmdb.org/t/p/w500/poster.jpg",
		Overview:    "A thief steals secrets through dreams.",
		ReleaseDate: "2010-07-16",
		Genres:      []string{"Action"},
	}
	if err := en.Enrich(context.Background(), item, false); err != nil {
		t.Fatal(err)
	}
	if *calls != 0 {
		t.Errorf("made %v network calls, want 0", *calls)
	}
	if len(store.fields) != 0 {
		t.Errorf("persisted %v updates, want none", len(store.fields))
	}
}

func TestEnrichResolvesAndMerges(t *testing.T) {
	en, store, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			_, _ = w.Write([]byte(`{"results":[{"id":27205}]}`))
		case "/movie/27205":
			_, _ = w.Write([]byte(`{
				"id": 27205,
				"overview": "A thief steals secrets through dreams.",
				"poster_path": "/poster.jpg",
				"release_date": "2010-07-16",
				"vote_average": 8.4,
				"original_language": "en",
				"genres": [{"id": 28, "name": "Action"}]
			}`))
		default:
			t.Errorf("unexpected request %v", r.URL.Path)
		}
	})
	item := &models.ContentItem{
		ID:    primitive.NewObjectID(),
		Title: "Inception",
		Type:  models.ContentTypeMovie,
	}
	if err := en.Enrich(context.Background(), item, false); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(store.providerIDs, []int64{27205}) {
		t.Errorf("persisted provider ids = %v", store.providerIDs)
	}
	if item.TmdbID != 27205 {
		t.Errorf("item TmdbID = %v", item.TmdbID)
	}
	if len(store.fields) != 1 {
		t.Fatalf("persisted %v updates, want 1", len(store.fields))
	}
	fields := store.fields[0]
	if fields["poster"] != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("poster = %v", fields["poster"])
	}
	if fields["release_date"] != "2010-07-16" {
		t.Errorf("release_date = %v", fields["release_date"])
	}
	if item.Overview != "A thief steals secrets through dreams." {
		t.Errorf("item overview not mutated, got %q", item.Overview)
	}
}

func TestEnrichKeepsLocalValues(t *testing.T) {
	en, store, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 27205,
			"overview": "remote overview",
			"poster_path": "/remote.jpg",
			"release_date": "2010-07-16",
			"vote_average": 8.4
		}`))
	})
	item := &models.ContentItem{
		ID:          primitive.NewObjectID(),
		Title:       "Inception",
		Type:        models.ContentTypeMovie,
		TmdbID:      27205,
		Overview:    "admin overview",
		ReleaseDate: "2010-01-01",
	}
	if err := en.Enrich(context.Background(), item, false); err != nil {
		t.Fatal(err)
	}
	if item.Overview != "admin overview" {
		t.Errorf("overview overwritten to %q", item.Overview)
	}
	if item.ReleaseDate != "2010-01-01" {
		t.Errorf("release date overwritten to %q", item.ReleaseDate)
	}
	if len(store.fields) != 1 {
		t.Fatalf("persisted %v updates, want 1", len(store.fields))
	}
	fields := store.fields[0]
	if _, ok := fields["overview"]; ok {
		t.Error("overview should not be in the update")
	}
	if fields["poster"] != "https://image.tmdb.org/t/p/w500/remote.jpg" {
		t.Errorf("poster = %v, missing field should be filled", fields["poster"])
	}
}

func TestEnrichSentinelOverviewIsMissing(t *testing.T) {
	en, store, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 27205, "overview": "remote overview"}`))
	})
	item := &models.ContentItem{
		ID:          primitive.NewObjectID(),
		Title:       "Inception",
		Type:        models.ContentTypeMovie,
		TmdbID:      27205,
		Overview:    models.NoOverview,
		Poster:      "p",
		ReleaseDate: "2010-07-16",
		Genres:      []string{"Action"},
	}
	if err := en.Enrich(context.Background(), item, false); err != nil {
		t.Fatal(err)
	}
	if item.Overview != "remote overview" {
		t.Errorf("overview = %q, sentinel should be replaced", item.Overview)
	}
	if len(store.fields) != 1 || store.fields[0]["overview"] != "remote overview" {
		t.Errorf("persisted updates = %v", store.fields)
	}
}

func TestEnrichPersistsIDBeforeFailedDetails(t *testing.T) {
	en, store, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/search/") {
			_, _ = w.Write([]byte(`{"results":[{"id":1396}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	item := &models.ContentItem{
		ID:    primitive.NewObjectID(),
		Title: "Breaking Bad",
		Type:  models.ContentTypeSeries,
	}
	err := en.Enrich(context.Background(), item, false)
	if err == nil {
		t.Fatal("expected error from failed detail fetch")
	}
	if !reflect.DeepEqual(store.providerIDs, []int64{1396}) {
		t.Errorf("provider id not persisted before the failure, got %v", store.providerIDs)
	}
	if item.TmdbID != 1396 {
		t.Errorf("item TmdbID = %v", item.TmdbID)
	}
}

func TestEnrichNoMatch(t *testing.T) {
	en, store, _ := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	item := &models.ContentItem{
		ID:    primitive.NewObjectID(),
		Title: "definitely not a movie",
		Type:  models.ContentTypeMovie,
	}
	if err := en.Enrich(context.Background(), item, false); err != nil {
		t.Fatal(err)
	}
	if len(store.providerIDs) != 0 || len(store.fields) != 0 {
		t.Errorf("no match should persist nothing, got ids %v fields %v", store.providerIDs, store.fields)
	}
}

func TestTrailerKeyWithoutProviderID(t *testing.T) {
	en, _, calls := newTestEnricher(t, func(w http.ResponseWriter, r *http.Request) {})
	key, err := en.TrailerKey(context.Background(), &models.ContentItem{Title: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty without a provider id", key)
	}
	if *calls != 0 {
		t.Errorf("made %v network calls, want 0", *calls)
	}
}

func TestNewWithNilApi(t *testing.T) {
	if en := New(nil, &mockStore{}); en != nil {
		t.Error("nil api should disable enrichment")
	}
}

func TestCategoryFor(t *testing.T) {
	if got := CategoryFor(models.ContentTypeSeries); got != tmdb.CategoryTV {
		t.Errorf("CategoryFor(series) = %v", got)
	}
	if got := CategoryFor(models.ContentTypeMovie); got != tmdb.CategoryMovie {
		t.Errorf("CategoryFor(movie) = %v", got)
	}
}
