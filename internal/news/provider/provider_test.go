package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
)

func TestGNewsCategory(t *testing.T) {
	assert.Equal(t, "technology", GNewsCategory("Technology"))
	assert.Equal(t, "nation", GNewsCategory("Politics"))
	assert.Equal(t, "world", GNewsCategory("environment"))
	assert.Equal(t, "general", GNewsCategory("Weather"))
	assert.Equal(t, "", GNewsCategory("All"))
	assert.Equal(t, "", GNewsCategory(""))
}

func TestGNewsFetchTopHeadlines(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"totalArticles":2,"articles":[
			{"title":"A","description":"desc a","content":"","url":"https://a.example/1","image":"https://img/1","publishedAt":"2025-01-02T03:04:05Z","source":{"name":"Wire"}},
			{"title":"B","description":"","content":"body b","url":"https://b.example/2","publishedAt":"bad","source":{}}
		]}`)
	}))
	defer srv.Close()

	g := NewGNews(config.GNews{APIKey: "k", BaseURL: srv.URL, Lang: "en", Timeout: time.Second}, logger.NewNop())
	articles := g.Fetch(context.Background(), Params{Category: "Politics", Max: 40})

	assert.Equal(t, "/top-headlines", gotPath)
	assert.Contains(t, gotQuery, "category=nation")
	assert.Contains(t, gotQuery, "max=25")
	require.Len(t, articles, 2)
	assert.Equal(t, "desc a", articles[0].Content)
	assert.Equal(t, "Wire", articles[0].Source)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), articles[0].PublishedAt)
	assert.Equal(t, "Unknown", articles[1].Source)
	assert.Equal(t, "gnews", articles[1].Provider)
}

func TestGNewsSearchUsesQuery(t *testing.T) {
	var gotPath, gotQ string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"articles":[]}`)
	}))
	defer srv.Close()

	g := NewGNews(config.GNews{APIKey: "k", BaseURL: srv.URL, Lang: "en", Timeout: time.Second}, logger.NewNop())
	articles := g.Fetch(context.Background(), Params{Query: "climate summit"})
	assert.Empty(t, articles)
	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "climate summit", gotQ)
}

func TestGNewsFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"errors":["quota"]}`)
	}))
	defer srv.Close()

	g := NewGNews(config.GNews{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	assert.Empty(t, g.Fetch(context.Background(), Params{}))

	noKey := NewGNews(config.GNews{BaseURL: srv.URL}, logger.NewNop())
	assert.Empty(t, noKey.Fetch(context.Background(), Params{}))
}

func TestNewsAPIDropsRemoved(t *testing.T) {
	var gotKey, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"status":"ok","totalResults":2,"articles":[
			{"source":{"name":"[Removed]"},"title":"[Removed]","url":"https://removed.com"},
			{"source":{"name":"Daily"},"title":"Real story","description":"d","url":"https://daily.example/x","urlToImage":"https://img","publishedAt":"2025-03-01T00:00:00Z"}
		]}`)
	}))
	defer srv.Close()

	n := NewNewsAPI(config.NewsAPI{APIKey: "secret", BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	articles := n.Fetch(context.Background(), Params{Query: "story"})
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "/v2/everything", gotPath)
	require.Len(t, articles, 1)
	assert.Equal(t, "Real story", articles[0].Title)
	assert.Equal(t, "d", articles[0].Content)
	assert.Equal(t, "newsapi", articles[0].Provider)
}

func TestNewsAPIErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","code":"apiKeyInvalid","message":"bad key"}`)
	}))
	defer srv.Close()

	n := NewNewsAPI(config.NewsAPI{APIKey: "x", BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	assert.Empty(t, n.Fetch(context.Background(), Params{}))
}

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Google News</title>%s</channel></rss>`

func rssItem(title, desc, link string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description><![CDATA[%s]]></description><pubDate>Mon, 06 Jan 2025 10:00:00 GMT</pubDate></item>`, title, link, desc)
}

func TestRegionalDigest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query().Get("q")
		var items string
		switch {
		case strings.HasPrefix(q, "Kerala"):
			items = rssItem("Floods hit Kochi - The Hindu", `<a href="x">Heavy rain in <b>Kochi</b></a>`, "https://hindu.example/1") +
				rssItem("Second Kerala story - NDTV", "more", "https://ndtv.example/2")
		case strings.HasPrefix(q, "Goa"):
			items = rssItem("Beach festival opens - Herald", "tourists arrive", "https://herald.example/3")
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, items)
	}))
	defer srv.Close()

	cfg := config.Regional{
		BaseURL:   srv.URL,
		Locale:    "hl=en-IN",
		BatchSize: 1,
		CacheTTL:  time.Hour,
		Groups: []config.RegionGroup{
			{Query: "Kerala Kochi news", Regions: []string{"Kerala"}},
			{Query: "Goa Panaji news", Regions: []string{"Goa"}},
		},
		Keywords: map[string][]string{
			"kerala": {"kerala", "kochi"},
			"goa":    {"goa", "panaji"},
		},
	}
	d := NewRegionalDigest(cfg, logger.NewNop())
	d.sleep = func(context.Context, time.Duration) error { return nil }

	items := d.Digest(context.Background())
	require.Len(t, items, 2)
	assert.Equal(t, "Kerala", items[0].Region)
	assert.Equal(t, "Floods hit Kochi", items[0].Article.Title)
	assert.Equal(t, "The Hindu", items[0].Article.Source)
	assert.Equal(t, "Heavy rain in Kochi", items[0].Article.Description)
	assert.Equal(t, "Goa", items[1].Region)
	assert.Equal(t, "Goa", items[1].Article.Region)

	// memoized
	_ = d.Digest(context.Background())
	assert.Equal(t, int32(2), calls.Load())

	filtered := d.Fetch(context.Background(), Params{Query: "goa"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "https://herald.example/3", filtered[0].URL)

	d.Invalidate()
	_ = d.Digest(context.Background())
	assert.Equal(t, int32(4), calls.Load())
}

func TestMatchRegion(t *testing.T) {
	d := NewRegionalDigest(config.Regional{}, logger.NewNop())
	assert.Equal(t, "Telangana", d.MatchRegion("Metro expansion in Hyderabad"))
	assert.Equal(t, "Karnataka", d.MatchRegion("BANGALORE traffic"))
	assert.Equal(t, "", d.MatchRegion("Nothing regional here"))
}

func TestSplitPublisher(t *testing.T) {
	title, pub := splitPublisher("Big news - Times of India")
	assert.Equal(t, "Big news", title)
	assert.Equal(t, "Times of India", pub)

	title, pub = splitPublisher("No publisher")
	assert.Equal(t, "No publisher", title)
	assert.Equal(t, "", pub)
}

func TestEnricherReplacesShortContent(t *testing.T) {
	page := `<html><head><title>t</title></head><body><div id="nav">menu</div><article><p>` +
		strings.Repeat("The council approved the new transit plan after a long debate. ", 20) +
		`</p></article></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	e := NewEnricher(config.Enrich{Enabled: true, MinContentLen: 100, MaxConcurrency: 2, Timeout: time.Second}, logger.NewNop())
	in := []dto.RawArticle{
		{Title: "short", Content: "tiny", URL: srv.URL + "/ok"},
		{Title: "broken", Content: "tiny", URL: srv.URL + "/broken"},
		{Title: "long", Content: strings.Repeat("x", 200), URL: srv.URL + "/ok"},
	}
	out := e.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	assert.Contains(t, out[0].Content, "transit plan")
	assert.Equal(t, "tiny", out[1].Content)
	assert.Equal(t, strings.Repeat("x", 200), out[2].Content)
	assert.Equal(t, "tiny", in[0].Content)
}

func TestEnricherDisabled(t *testing.T) {
	e := NewEnricher(config.Enrich{}, logger.NewNop())
	in := []dto.RawArticle{{Title: "a", Content: "tiny", URL: "http://127.0.0.1:1/"}}
	assert.Equal(t, in, e.Enrich(context.Background(), in))
}
