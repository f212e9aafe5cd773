package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/api"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/internal/discovery"
	"github.com/Atharva-Gore/Random-Song-Lyrics-Searcher/pkg/music"
	"github.com/gin-gonic/gin"
)

type fakeDiscoverer struct {
	res        discovery.Result
	err        error
	calls      int
	artist     string
	preferLong bool
}

func (f *fakeDiscoverer) Discover(ctx context.Context, artist string, preferLong bool) (discovery.Result, error) {
	f.calls++
	f.artist = artist
	f.preferLong = preferLong
	return f.res, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, router *gin.Engine, target string) (int, api.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var resp api.Response
	if strings.HasPrefix(target, "/api/") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, resp
}

func TestDiscoverFound(t *testing.T) {
	d := &fakeDiscoverer{res: discovery.Result{
		Finding: &discovery.Finding{Artist: "Adele", Title: "Hello", Line: "Hello from the other side"},
		Reason:  discovery.ReasonFound,
	}}

	code, resp := get(t, NewRouter(d), "/api/discover?artist=%20Adele%20&long=true")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if d.artist != "Adele" || !d.preferLong {
		t.Errorf("unexpected call artist=%q long=%v", d.artist, d.preferLong)
	}
	if !resp.Found || resp.Title != "Hello" || resp.Line != "Hello from the other side" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Share != "artist=Adele&text=Hello%20from%20the%20other%20side" {
		t.Errorf("unexpected share %q", resp.Share)
	}
}

func TestDiscoverNotFound(t *testing.T) {
	d := &fakeDiscoverer{res: discovery.Result{Reason: discovery.ReasonNoSongs}}

	code, resp := get(t, NewRouter(d), "/api/discover?artist=Nobody")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Found || resp.Reason != "no_songs" || resp.Message != discovery.ReasonNoSongs.Message() {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestDiscoverCatalogUnavailable(t *testing.T) {
	d := &fakeDiscoverer{err: fmt.Errorf("%w: timeout", music.ErrCatalogUnavailable)}

	code, resp := get(t, NewRouter(d), "/api/discover?artist=Adele")
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestDiscoverBadInput(t *testing.T) {
	d := &fakeDiscoverer{}
	router := NewRouter(d)

	for _, target := range []string{"/api/discover", "/api/discover?artist=%20%20", "/api/discover?artist=Adele&long=maybe"} {
		if code, _ := get(t, router, target); code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, code)
		}
	}
	if d.calls != 0 {
		t.Errorf("discoverer should not be called on bad input, got %d calls", d.calls)
	}
}

func TestShareRestore(t *testing.T) {
	d := &fakeDiscoverer{}
	router := NewRouter(d)

	code, resp := get(t, router, "/api/share?artist=Adele&text=Hello%20from%20the%20other%20side")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Artist != "Adele" || resp.Line != "Hello from the other side" || !resp.Found {
		t.Errorf("unexpected response %+v", resp)
	}
	if d.calls != 0 {
		t.Error("restoring a share must not run discovery")
	}

	if code, _ := get(t, router, "/api/share?artist=Adele"); code != http.StatusBadRequest {
		t.Errorf("expected 400 for incomplete share, got %d", code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := NewRouter(&fakeDiscoverer{})
	for _, target := range []string{"/healthz", "/metrics"} {
		if code, _ := get(t, router, target); code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, code)
		}
	}
}
