package ads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/moviezone-io/web-ui/models"
)

type mockStore struct {
	providers  []*models.AdProvider
	placements []*models.AdPlacement
}

func (s *mockStore) ActiveProviders(ctx context.Context) ([]*models.AdProvider, error) {
	return s.providers, nil
}

func (s *mockStore) ActivePlacements(ctx context.Context, position models.AdPosition, limit int64) ([]*models.AdPlacement, error) {
	var out []*models.AdPlacement
	for _, p := range s.placements {
		if p.Position == position && int64(len(out)) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func adServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestServeFirstWorkingProviderWins(t *testing.T) {
	broken := adServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	working := adServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/creatives" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-2" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.URL.Query().Get("position"); got != "header" {
			t.Errorf("position = %q", got)
		}
		_, _ = w.Write([]byte(`{"creatives":[{"title":"Promo","format":"banner","image_url":"i","target_url":"t"}]}`))
	})
	store := &mockStore{
		providers: []*models.AdProvider{
			{Name: "broken", ApiURL: broken.URL, ApiKey: "key-1", Priority: 1},
			{Name: "working", ApiURL: working.URL, ApiKey: "key-2", Priority: 2},
		},
	}
	serving := New(NewClient(http.DefaultClient), store)
	creatives, err := serving.Serve(context.Background(), models.AdPositionHeader)
	if err != nil {
		t.Fatal(err)
	}
	if len(creatives) != 1 {
		t.Fatalf("got %v creatives, want 1", len(creatives))
	}
	if creatives[0].Provider != "working" {
		t.Errorf("provider = %q, the failing provider should be skipped", creatives[0].Provider)
	}
	if creatives[0].Title != "Promo" {
		t.Errorf("title = %q", creatives[0].Title)
	}
}

func TestServeFallsBackToPlacements(t *testing.T) {
	empty := adServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"creatives":[]}`))
	})
	store := &mockStore{
		providers: []*models.AdProvider{
			{Name: "empty", ApiURL: empty.URL},
		},
		placements: []*models.AdPlacement{
			{ID: primitive.NewObjectID(), Title: "House Ad", Type: models.AdTypeBanner, Position: models.AdPositionFooter, ImageURL: "i", TargetURL: "t"},
			{ID: primitive.NewObjectID(), Title: "Elsewhere", Type: models.AdTypeBanner, Position: models.AdPositionHeader},
		},
	}
	serving := New(NewClient(http.DefaultClient), store)
	creatives, err := serving.Serve(context.Background(), models.AdPositionFooter)
	if err != nil {
		t.Fatal(err)
	}
	if len(creatives) != 1 {
		t.Fatalf("got %v creatives, want only the footer placement", len(creatives))
	}
	if creatives[0].Title != "House Ad" || creatives[0].Format != "banner" {
		t.Errorf("creative = %+v", creatives[0])
	}
	if creatives[0].Provider != "" {
		t.Errorf("local placements should carry no provider, got %q", creatives[0].Provider)
	}
}

func TestServeNoProvidersNoPlacements(t *testing.T) {
	serving := New(NewClient(http.DefaultClient), &mockStore{})
	creatives, err := serving.Serve(context.Background(), models.AdPositionMiddle)
	if err != nil {
		t.Fatal(err)
	}
	if len(creatives) != 0 {
		t.Errorf("got %v creatives, want none", len(creatives))
	}
}

func TestFetchRetriesOnce(t *testing.T) {
	calls := 0
	srv := adServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"creatives":[{"title":"Second Try"}]}`))
	})
	cl := NewClient(http.DefaultClient)
	p := &models.AdProvider{Name: "flaky", ApiURL: srv.URL}
	creatives, err := cl.Fetch(context.Background(), p, models.AdPositionHeader)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("made %v calls, want a single retry", calls)
	}
	if len(creatives) != 1 || creatives[0].Title != "Second Try" {
		t.Errorf("creatives = %+v", creatives)
	}
	if creatives[0].Provider != "flaky" {
		t.Errorf("provider = %q, want stamped provider name", creatives[0].Provider)
	}
}

func TestForPageNilServing(t *testing.T) {
	var serving *Serving
	p := serving.ForPage(context.Background())
	if p == nil {
		t.Fatal("nil serving should still return an empty page")
	}
	if len(p.Header) != 0 || len(p.Middle) != 0 || len(p.Footer) != 0 {
		t.Errorf("page = %+v, want empty slots", p)
	}
}
