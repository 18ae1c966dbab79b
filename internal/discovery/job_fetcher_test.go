package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobscout-backend/internal/domain"
)

func TestFetchGreenhouse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/jobs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("content"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jobs": [
			{"id": 101, "title": "Backend Engineer", "content": "<p>Build &amp; ship APIs</p>",
			 "absolute_url": "https://boards.greenhouse.io/acme/jobs/101",
			 "location": {"name": "Remote"}},
			{"id": 102, "title": "Data Analyst", "content": "Crunch numbers",
			 "absolute_url": "", "location": {"name": ""}}
		]}`))
	}))
	defer srv.Close()

	f := NewFetcher()
	f.greenhouseAPIBase = srv.URL

	jobs := f.Fetch(context.Background(), "https://boards.greenhouse.io/acme", domain.ATSGreenhouse)
	assert.Len(t, jobs, 2)

	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Remote", jobs[0].Location)
	assert.Equal(t, "Build & ship APIs", jobs[0].Description)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/101", jobs[0].ApplyURL)

	t.Run("Should fall back to defaults for missing fields", func(t *testing.T) {
		assert.Equal(t, "Not specified", jobs[1].Location)
		assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/102", jobs[1].ApplyURL)
	})
}

func TestFetchLever(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"text": "Platform Engineer",
			 "description": "<b>HTML body</b>",
			 "descriptionPlain": "Plain body",
			 "applyUrl": "https://jobs.lever.co/acme/1/apply",
			 "hostedUrl": "https://jobs.lever.co/acme/1",
			 "categories": {"location": "Jakarta"}},
			{"text": "Designer",
			 "description": "<i>Only HTML</i>",
			 "descriptionPlain": "",
			 "applyUrl": "",
			 "hostedUrl": "https://jobs.lever.co/acme/2",
			 "categories": {"location": ""}}
		]`))
	}))
	defer srv.Close()

	f := NewFetcher()
	f.leverAPIBase = srv.URL

	jobs := f.Fetch(context.Background(), "https://jobs.lever.co/acme", domain.ATSLever)
	assert.Len(t, jobs, 2)

	t.Run("Should prefer plain description and applyUrl", func(t *testing.T) {
		assert.Equal(t, "Platform Engineer", jobs[0].Title)
		assert.Equal(t, "Jakarta", jobs[0].Location)
		assert.Equal(t, "Plain body", jobs[0].Description)
		assert.Equal(t, "https://jobs.lever.co/acme/1/apply", jobs[0].ApplyURL)
	})

	t.Run("Should fall back to HTML description and hostedUrl", func(t *testing.T) {
		assert.Equal(t, "Only HTML", jobs[1].Description)
		assert.Equal(t, "https://jobs.lever.co/acme/2", jobs[1].ApplyURL)
		assert.Equal(t, "Not specified", jobs[1].Location)
	})
}

func TestFetchSlugExtractionFailure(t *testing.T) {
	f := NewFetcher()

	assert.Nil(t, f.Fetch(context.Background(), "https://acme.com/careers", domain.ATSGreenhouse))
	assert.Nil(t, f.Fetch(context.Background(), "https://acme.com/careers", domain.ATSLever))
}

func TestFetchUnsupportedATS(t *testing.T) {
	f := NewFetcher()

	assert.Nil(t, f.Fetch(context.Background(), "https://acme.com/careers", domain.ATSWorkday))
	assert.Nil(t, f.Fetch(context.Background(), "https://acme.com/careers", domain.ATSUnknown))
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Should remove tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"Should unescape entities", "Tom &amp; Jerry&#39;s &lt;show&gt;", "Tom & Jerry's <show>"},
		{"Should collapse whitespace", "a\n\n  b\t\tc", "a b c"},
		{"Should handle nbsp", "one&nbsp;two", "one two"},
		{"Should trim edges", "  <div> padded </div>  ", "padded"},
		{"Should pass plain text through", "plain text", "plain text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripHTML(tc.input))
		})
	}
}
