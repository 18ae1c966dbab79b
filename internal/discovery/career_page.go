package discovery

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gocolly/colly/v2"

	"go-jobscout-backend/pkg/logger"
)

const locatorUserAgent = "Mozilla/5.0 (compatible; JobScoutAgent/1.0)"

// Common career page path suffixes, probed in order.
var commonCareerPaths = []string{
	"/careers",
	"/jobs",
	"/work-with-us",
	"/join-us",
	"/career",
	"/job",
	"/hiring",
	"/opportunities",
	"/open-positions",
}

// Keywords scored against candidate link URLs.
var careerKeywords = []string{
	"career",
	"careers",
	"job",
	"jobs",
	"hiring",
	"join",
	"work-with-us",
	"opportunities",
	"open-positions",
	"openings",
}

// Locator finds a company's career page from its homepage: cheap path
// probes first, then a homepage link scan scored by career keywords.
type Locator struct {
	probe       *resty.Client
	pageTimeout time.Duration
}

func NewLocator() *Locator {
	probe := resty.New().
		SetTimeout(5 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3)).
		SetHeader("User-Agent", locatorUserAgent)

	return &Locator{
		probe:       probe,
		pageTimeout: 10 * time.Second,
	}
}

// Locate returns the best-guess career page URL. A false second return means
// none was found; per-candidate network failures are treated as "not found"
// and never abort the whole operation.
func (l *Locator) Locate(ctx context.Context, homepageURL string) (string, bool) {
	baseURL := normalizeBaseURL(homepageURL)

	if found, ok := l.tryCommonPaths(ctx, baseURL); ok {
		logger.Log.Info("Found career page via common path", "url", found)
		return found, true
	}

	if found, ok := l.scanHomepageLinks(baseURL); ok {
		logger.Log.Info("Found career page via link scan", "url", found)
		return found, true
	}

	logger.Log.Warn("No career page found", "homepage", baseURL)
	return "", false
}

// tryCommonPaths issues lightweight existence checks; the first path
// answering with a non-error status is accepted as-is.
func (l *Locator) tryCommonPaths(ctx context.Context, baseURL string) (string, bool) {
	for _, path := range commonCareerPaths {
		candidate := baseURL + path
		resp, err := l.probe.R().SetContext(ctx).Head(candidate)
		if err != nil {
			continue
		}
		if resp.StatusCode() < 400 {
			return candidate, true
		}
	}
	return "", false
}

// scanHomepageLinks fetches the homepage, collects same-origin anchors in
// encounter order and picks the highest-scoring one. Zero matches means
// none-found, never an arbitrary link.
func (l *Locator) scanHomepageLinks(baseURL string) (string, bool) {
	baseHost := hostnameOf(baseURL)
	if baseHost == "" {
		return "", false
	}

	var links []string
	seen := make(map[string]struct{})

	c := colly.NewCollector(colly.UserAgent(locatorUserAgent))
	c.SetRequestTimeout(l.pageTimeout)

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}
		host := hostnameOf(link)
		if host != baseHost && !strings.HasSuffix(host, "."+baseHost) {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	if err := c.Visit(baseURL); err != nil {
		logger.Log.Error("Failed to fetch homepage", "url", baseURL, "error", err)
		return "", false
	}
	c.Wait()

	type scored struct {
		url   string
		score int
		order int
	}
	var candidates []scored
	for i, link := range links {
		if s := scoreCareerLink(link); s > 0 {
			candidates = append(candidates, scored{url: link, score: s, order: i})
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	// Stable sort keeps encounter order as the tie-break
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	return candidates[0].url, true
}

// scoreCareerLink counts keyword occurrences in the URL, with a bonus when
// the keyword sits in the path rather than only the query string.
func scoreCareerLink(link string) int {
	lower := strings.ToLower(link)
	path := ""
	if u, err := url.Parse(link); err == nil {
		path = strings.ToLower(u.Path)
	}

	score := 0
	for _, keyword := range careerKeywords {
		if strings.Contains(lower, keyword) {
			score++
			if strings.Contains(path, keyword) {
				score += 2
			}
		}
	}
	return score
}

// normalizeBaseURL forces https:// for scheme-less input and strips trailing
// slashes.
func normalizeBaseURL(raw string) string {
	normalized := strings.TrimSpace(raw)
	if !strings.HasPrefix(normalized, "http") {
		normalized = "https://" + normalized
	}
	return strings.TrimRight(normalized, "/")
}

func hostnameOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
