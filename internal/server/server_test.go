package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/inquiry"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/search"
	"git.home.luguber.info/inful/sitegen/internal/seo"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

func writeDist(t *testing.T) string {
	t.Helper()
	dist := t.TempDir()
	for rel, body := range map[string]string{
		"index.html":             "<html>home</html>",
		"about/index.html":       "<html>about</html>",
		"404.html":               "<html>not found</html>",
		"assets/index-abc.js":    "export {}",
		".sitegen-manifest.json": "{}",
	} {
		p := filepath.Join(dist, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
	return dist
}

func newTestServer(t *testing.T, dist string, svc *inquiry.Service) *Server {
	t.Helper()
	lib := &content.Library{
		Posts:      content.DefaultPosts(),
		Pages:      content.DefaultPages(),
		QuickPages: content.DefaultQuickPages(),
	}
	snap := NewSnapshot(site.Default(), lib, routes.Default())
	reg := prom.NewRegistry()
	return New(
		config.ServerConfig{CORSOrigins: []string{"https://clarivisgroup.com"}},
		config.MonitoringConfig{Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"}},
		Options{
			DistDir:        dist,
			Content:        NewContent(snap),
			Inquiries:      svc,
			Recorder:       metrics.NewPrometheusRecorder(reg),
			MetricsHandler: metrics.HTTPHandler(reg),
		})
}

func newInquiryService(t *testing.T) *inquiry.Service {
	t.Helper()
	store, err := inquiry.NewSQLiteStore(filepath.Join(t.TempDir(), "inq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return inquiry.NewService(config.InquiryConfig{}, store, inquiry.WithDelay(0))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestStaticPrettyURLs(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()

	cases := []struct {
		target string
		status int
		body   string
	}{
		{"/", http.StatusOK, "home"},
		{"/about", http.StatusOK, "about"},
		{"/about/", http.StatusOK, "about"},
		{"/assets/index-abc.js", http.StatusOK, "export"},
		{"/missing", http.StatusNotFound, "not found"},
		{"/about/missing.png", http.StatusNotFound, "not found"},
		{"/../etc/passwd", http.StatusNotFound, "not found"},
		{"/.sitegen-manifest.json", http.StatusNotFound, "not found"},
	}
	for _, tc := range cases {
		w := get(t, h, tc.target)
		assert.Equal(t, tc.status, w.Code, tc.target)
		assert.Contains(t, w.Body.String(), tc.body, tc.target)
	}
	assert.Equal(t, "public, max-age=31536000, immutable", get(t, h, "/assets/index-abc.js").Header().Get("Cache-Control"))
}

func TestSearchAPI(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()

	w := get(t, h, "/api/search?q=accreditation&mode=quick")
	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, search.ModeQuick, resp.Mode)
	assert.Equal(t, search.QuickLimit, resp.Count)
	assert.True(t, strings.HasPrefix(resp.Summary, "Found 8 results"))

	w = get(t, h, "/api/search?q=")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
	assert.NotNil(t, resp.Results)

	w = get(t, h, "/api/search?q=x&limit=-2")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, h, "/api/search?q=%20%20pricing%20")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pricing", resp.Query)
	assert.Contains(t, resp.Summary, `for "pricing"`)
}

func TestMetaAPI(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()

	w := get(t, h, "/api/meta?path=/about")
	require.Equal(t, http.StatusOK, w.Code)
	var resp MetaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	about, _ := routes.Default().Get("/about")
	assert.Equal(t, about.Title, resp.Title)
	assert.Equal(t, "https://www.clarivisgroup.com/about", resp.Canonical)
	assert.Equal(t, seo.Share(resp.Canonical, resp.Title), resp.Share)

	// Overrides win; keywords merge into the route keywords.
	w = get(t, h, "/api/meta?path=/about&title=Custom&keywords=alpha,%20beta&ogType=article")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Custom", resp.Title)
	assert.Equal(t, about.Description, resp.Description)
	assert.Equal(t, routes.OGTypeArticle, resp.OGType)
	assert.Equal(t, []string{"alpha", "beta"}, resp.Keywords[len(resp.Keywords)-2:])

	// Unknown paths fall back to the home route.
	w = get(t, h, "/api/meta?path=/no-such-page")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	home, _ := routes.Default().Home()
	assert.Equal(t, home.Title, resp.Title)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/meta?ogType=video").Code)
}

func TestPostsAPI(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()
	posts := content.DefaultPosts()

	w := get(t, h, "/api/posts")
	require.Equal(t, http.StatusOK, w.Code)
	var list PostListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, len(posts), list.Count)
	assert.Equal(t, posts.Newest()[0].ID, list.Posts[0].ID)
	assert.Equal(t, posts.Categories(), list.Categories)

	w = get(t, h, "/api/posts?featured=true")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Posts, len(posts.Featured()))

	w = get(t, h, "/api/posts?category=compliance")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.NotEmpty(t, list.Posts)
	for _, p := range list.Posts {
		assert.Equal(t, "Compliance", p.Category)
	}

	w = get(t, h, "/api/posts/1")
	require.Equal(t, http.StatusOK, w.Code)
	var post PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, "/blog/1", post.Path)
	assert.NotEmpty(t, post.HTML)
	assert.Equal(t, seo.Share("https://www.clarivisgroup.com/blog/1", post.Title), post.Share)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/posts/999").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/api/posts/abc").Code)
}

func TestCanonicalHostRedirect(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/about?x=1", nil)
	r.Host = "clarivisgroup.com:8080"
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://www.clarivisgroup.com/about?x=1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/about", nil)
	r.Host = "www.clarivisgroup.com"
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesAPI(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()
	w := get(t, h, "/api/routes")
	require.Equal(t, http.StatusOK, w.Code)
	var list []RouteInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, routes.Default().Len())
	assert.Equal(t, "/", list[0].Path)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/api/nope").Code)
}

func postJSON(h http.Handler, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, r)
	return w
}

func TestInquiryAPI(t *testing.T) {
	srv := newTestServer(t, writeDist(t), newInquiryService(t))
	h := srv.PublicHandler()

	w := postJSON(h, "/api/inquiries/contact", `{"name":"Sam","email":"sam@example.org","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var receipt inquiry.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, inquiry.SuccessMessage, receipt.Message)

	w = postJSON(h, "/api/inquiries/pricing", `{"organizationName":"","email":"bad"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var vr ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vr))
	assert.Equal(t, "organizationName", vr.Fields[0].Field)
	assert.Equal(t, "Organization name is required", vr.Fields[0].Message)

	assert.Equal(t, http.StatusBadRequest, postJSON(h, "/api/inquiries/contact", `{`).Code)
	assert.Equal(t, http.StatusNotFound, postJSON(h, "/api/inquiries/careers", `{}`).Code)

	w = get(t, h, "/api/inquiries/options")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"self-study"`)

	admin := srv.AdminHandler()
	w = get(t, admin, "/api/inquiries?kind=contact")
	require.Equal(t, http.StatusOK, w.Code)
	var list []inquiry.Inquiry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, receipt.ID, list[0].ID)
}

func TestInquiriesDisabled(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()
	w := postJSON(h, "/api/inquiries/contact", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, writeDist(t), nil).PublicHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/routes", nil)
	r.Header.Set("Origin", "https://clarivisgroup.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "https://clarivisgroup.com", w.Header().Get("Access-Control-Allow-Origin"))

	r.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminEndpoints(t *testing.T) {
	dist := writeDist(t)
	srv := newTestServer(t, dist, nil)
	admin := srv.AdminHandler()

	assert.Equal(t, http.StatusOK, get(t, admin, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, admin, "/readyz").Code)

	// Generate at least one observation before scraping.
	get(t, srv.PublicHandler(), "/")
	w := get(t, admin, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sitegen_http_request_duration_seconds")

	require.NoError(t, os.Remove(filepath.Join(dist, "index.html")))
	assert.Equal(t, http.StatusServiceUnavailable, get(t, admin, "/readyz").Code)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestRunGracefulShutdown(t *testing.T) {
	addr, adminAddr := freeAddr(t), freeAddr(t)
	srv := New(config.ServerConfig{Addr: addr, AdminAddr: adminAddr, ReadTimeout: time.Second, WriteTimeout: time.Second},
		config.MonitoringConfig{}, Options{DistDir: writeDist(t)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + adminAddr + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	srv := New(config.ServerConfig{Addr: ln.Addr().String(), AdminAddr: freeAddr(t)}, config.MonitoringConfig{}, Options{DistDir: t.TempDir()})
	require.Error(t, srv.Run(context.Background()))
}
