package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"sync"
	"testing"
	"time"

	browseout "writerly/internal/modules/browse/adapter/out"
	"writerly/internal/modules/browse/dto"
	"writerly/internal/modules/browse/usecase"
	apperrors "writerly/internal/platform/errors"
	"writerly/internal/platform/httpapi"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	query []url.Values
}

func (r *recorder) last() (string, url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paths[len(r.paths)-1], r.query[len(r.query)-1]
}

func newServer(t *testing.T) (*recorder, *httptest.Server) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.paths = append(rec.paths, r.URL.Path)
		rec.query = append(rec.query, r.URL.Query())
		rec.mu.Unlock()
		switch r.URL.Path {
		case "/api/browse/genres":
			_, _ = io.WriteString(w, `[{"genre":"horror","count":3,"avg_rating":4.5}]`)
		default:
			_, _ = io.WriteString(w, `{"works":[{"id":"w1","title":"One","rating_average":null}],"total":90,"total_pages":8}`)
		}
	}))
	t.Cleanup(srv.Close)
	return rec, srv
}

func TestWorksSendsFiltersAndComputesWindow(t *testing.T) {
	t.Parallel()
	rec, srv := newServer(t)
	uc := usecase.NewInteractor(browseout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second)))

	out, err := uc.Works(context.Background(), dto.QueryInput{Genre: "horror", MinRating: 3.5, SortBy: "views_count", Page: 7})
	if err != nil {
		t.Fatalf("works: %v", err)
	}
	path, query := rec.last()
	if path != "/api/browse/works" {
		t.Fatalf("unexpected path %s", path)
	}
	want := url.Values{
		"page": {"7"}, "page_size": {"12"}, "sort_by": {"views_count"}, "sort_order": {"desc"},
		"genre": {"horror"}, "min_rating": {"3.5"},
	}
	if !reflect.DeepEqual(query, want) {
		t.Fatalf("unexpected query %v", query)
	}
	if out.Total != 90 || out.TotalPages != 8 || len(out.Works) != 1 {
		t.Fatalf("unexpected page: %+v", out)
	}
	if !reflect.DeepEqual(out.Window, []int{4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected window: %v", out.Window)
	}
}

func TestSearchFallsBackToWorksForBlankQuery(t *testing.T) {
	t.Parallel()
	rec, srv := newServer(t)
	uc := usecase.NewInteractor(browseout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second)))

	if _, err := uc.Search(context.Background(), dto.QueryInput{Text: "   "}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if path, _ := rec.last(); path != "/api/browse/works" {
		t.Fatalf("blank search should hit works, got %s", path)
	}

	if _, err := uc.Search(context.Background(), dto.QueryInput{Text: "ghost"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	path, query := rec.last()
	if path != "/api/browse/search" || query.Get("q") != "ghost" || query.Get("search_in") != "title,summary" {
		t.Fatalf("unexpected search request %s %v", path, query)
	}
	if query.Has("min_rating") || query.Has("genre") {
		t.Fatalf("empty filters must be omitted: %v", query)
	}
}

func TestGenresAndValidation(t *testing.T) {
	t.Parallel()
	_, srv := newServer(t)
	uc := usecase.NewInteractor(browseout.NewHTTPGateway(httpapi.NewClient(srv.URL+"/api", nil, time.Second)))

	genres, err := uc.Genres(context.Background())
	if err != nil || len(genres) != 1 || genres[0].Genre != "horror" || genres[0].AvgRating != 4.5 {
		t.Fatalf("unexpected genres %+v err=%v", genres, err)
	}
	if _, err := uc.Works(context.Background(), dto.QueryInput{SortBy: "title"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid sort, got %v", err)
	}
}
