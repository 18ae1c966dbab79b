package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func newTestLocator() *Locator {
	return &Locator{
		probe:       resty.New().SetTimeout(2 * time.Second),
		pageTimeout: 2 * time.Second,
	}
}

func TestLocateViaCommonPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/careers" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	locator := newTestLocator()
	found, ok := locator.Locate(context.Background(), srv.URL)
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/careers", found)
}

func TestLocateViaLinkScan(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			// Path probes all miss so the link scan has to run.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<a href="/about">About</a>
			<a href="/team/open-positions">We're hiring</a>
			<a href="https://twitter.com/acme">Twitter</a>
		</body></html>`))
	})

	locator := newTestLocator()
	found, ok := locator.Locate(context.Background(), srv.URL)
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/team/open-positions", found)
}

func TestLocatePrefersHigherScoringLink(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		// "join" scores one keyword; "/company-careers" hits career+careers
		// with path bonuses and must win despite appearing later.
		w.Write([]byte(`<html><body>
			<a href="/join">Join</a>
			<a href="/company-careers">Careers</a>
		</body></html>`))
	})

	locator := newTestLocator()
	found, ok := locator.Locate(context.Background(), srv.URL)
	assert.True(t, ok)
	assert.Equal(t, srv.URL+"/company-careers", found)
}

func TestLocateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><a href="/about">About</a></body></html>`))
	}))
	defer srv.Close()

	locator := newTestLocator()
	found, ok := locator.Locate(context.Background(), srv.URL)
	assert.False(t, ok)
	assert.Empty(t, found)
}

func TestLocateIgnoresOffsiteLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<a href="https://jobboard.example.com/careers">External board</a>
		</body></html>`))
	}))
	defer srv.Close()

	locator := newTestLocator()
	_, ok := locator.Locate(context.Background(), srv.URL)
	assert.False(t, ok)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://acme.com", normalizeBaseURL("acme.com"))
	assert.Equal(t, "https://acme.com", normalizeBaseURL("https://acme.com/"))
	assert.Equal(t, "http://acme.com", normalizeBaseURL("http://acme.com"))
}

func TestScoreCareerLink(t *testing.T) {
	assert.Zero(t, scoreCareerLink("https://acme.com/about"))
	assert.Greater(t, scoreCareerLink("https://acme.com/careers"), scoreCareerLink("https://acme.com/?ref=jobs"))
}
