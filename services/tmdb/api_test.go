package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func newTestApi(t *testing.T, handler http.HandlerFunc) *Api {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithURL(srv.URL, "test-key", srv.Client())
}

func TestSearchID(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Inception" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":27205},{"id":999}]}`))
	})
	id, err := api.SearchID(context.Background(), CategoryMovie, "Inception")
	if err != nil {
		t.Fatal(err)
	}
	if id != 27205 {
		t.Errorf("id = %v, want first result", id)
	}
}

func TestSearchIDNoResults(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	id, err := api.SearchID(context.Background(), CategoryTV, "does not exist")
	if err != nil {
		t.Fatal(err)
	}
	if id != 0 {
		t.Errorf("id = %v, want 0 for no results", id)
	}
}

func TestDetails(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1396" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": 1396,
			"overview": "A chemistry teacher turns to crime.",
			"poster_path": "/poster.jpg",
			"first_air_date": "2008-01-20",
			"vote_average": 8.9,
			"original_language": "en",
			"genres": [{"id": 18, "name": "Drama"}]
		}`))
	})
	det, err := api.Details(context.Background(), CategoryTV, 1396)
	if err != nil {
		t.Fatal(err)
	}
	if det.Overview != "A chemistry teacher turns to crime." {
		t.Errorf("overview = %q", det.Overview)
	}
	if got := det.Date(CategoryTV); got != "2008-01-20" {
		t.Errorf("Date(tv) = %q, want first air date", got)
	}
	if got := det.GenreNames(); !reflect.DeepEqual(got, []string{"Drama"}) {
		t.Errorf("GenreNames() = %v", got)
	}
}

func TestDetailsErrorStatus(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := api.Details(context.Background(), CategoryMovie, 1); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestVideos(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205/videos" {
			t.Errorf("unexpected path %v", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"key":"abc","type":"Featurette","site":"YouTube"},
			{"key":"def","type":"Trailer","site":"Vimeo"},
			{"key":"ghi","type":"Trailer","site":"YouTube"}
		]}`))
	})
	videos, err := api.Videos(context.Background(), CategoryMovie, 27205)
	if err != nil {
		t.Fatal(err)
	}
	if got := FindTrailer(videos); got != "ghi" {
		t.Errorf("FindTrailer() = %q, want the first YouTube trailer", got)
	}
}

func TestFindTrailerAbsent(t *testing.T) {
	videos := []Video{{Key: "abc", Type: "Clip", Site: "YouTube"}}
	if got := FindTrailer(videos); got != "" {
		t.Errorf("FindTrailer() = %q, want empty", got)
	}
}

func TestDateMovie(t *testing.T) {
	det := &Details{ReleaseDate: "2010-07-16", FirstAirDate: "2008-01-20"}
	if got := det.Date(CategoryMovie); got != "2010-07-16" {
		t.Errorf("Date(movie) = %q", got)
	}
}

func TestGenreNamesFallback(t *testing.T) {
	det := &Details{GenreIDs: []int64{28, 878, 424242}}
	got := det.GenreNames()
	want := []string{"Action", "Science Fiction"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GenreNames() = %v, want %v from the static table", got, want)
	}
}

func TestPosterURL(t *testing.T) {
	if got := PosterURL("/poster.jpg"); got != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("PosterURL() = %q", got)
	}
	if got := PosterURL(""); got != "" {
		t.Errorf("PosterURL(\"\") = %q, want empty", got)
	}
}
