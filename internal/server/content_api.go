package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/sitegen/internal/content"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/seo"
)

// MetaResponse is the body of GET /api/meta.
type MetaResponse struct {
	seo.Meta
	Share seo.ShareLinks `json:"share"`
}

// PostSummary is one entry of GET /api/posts.
type PostSummary struct {
	content.Post
	Path string `json:"path"`
}

// PostListResponse is the body of GET /api/posts.
type PostListResponse struct {
	Categories []string      `json:"categories"`
	Count      int           `json:"count"`
	Posts      []PostSummary `json:"posts"`
}

// PostResponse is the body of GET /api/posts/{id}.
type PostResponse struct {
	PostSummary
	HTML  string         `json:"html"`
	Share seo.ShareLinks `json:"share"`
}

// handleMeta resolves page metadata for client-side navigation. Query
// values title, description, keywords and ogType override the route.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	snap := s.content.Load()
	if snap.Table == nil {
		s.writeContentLoading(w, r)
		return
	}
	q := r.URL.Query()
	path := q.Get("path")
	if path == "" {
		path = "/"
	}
	o := seo.Override{
		Title:       strings.TrimSpace(q.Get("title")),
		Description: strings.TrimSpace(q.Get("description")),
	}
	if raw := q.Get("ogType"); raw != "" {
		og, err := routes.ParseOGType(raw)
		if err != nil {
			s.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("unknown og type").
				WithContext("ogType", raw).Build())
			return
		}
		o.OGType = og
	}
	if raw := strings.TrimSpace(q.Get("keywords")); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				o.Keywords = append(o.Keywords, k)
			}
		}
	}
	meta := seo.Resolve(snap.Site, snap.Table, path, o)
	_ = writeJSONPretty(w, r, http.StatusOK, MetaResponse{Meta: meta, Share: seo.Share(meta.Canonical, meta.Title)})
}

// handlePosts lists posts newest first. ?category= and ?featured=true filter.
func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	snap := s.content.Load()
	posts := snap.Posts
	if featured := r.URL.Query().Get("featured"); featured == "1" || featured == "true" {
		posts = posts.Featured()
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	out := PostListResponse{Categories: snap.Posts.Categories(), Posts: []PostSummary{}}
	if out.Categories == nil {
		out.Categories = []string{}
	}
	for _, p := range posts.Newest() {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out.Posts = append(out.Posts, PostSummary{Post: p, Path: p.Path()})
	}
	out.Count = len(out.Posts)
	_ = writeJSONPretty(w, r, http.StatusOK, out)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("post id must be an integer").
			WithContext("id", raw).Build())
		return
	}
	snap := s.content.Load()
	p, ok := snap.Posts.ByID(id)
	if !ok {
		s.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("post not found").WithContext("id", id).Build())
		return
	}
	_ = writeJSONPretty(w, r, http.StatusOK, PostResponse{
		PostSummary: PostSummary{Post: p, Path: p.Path()},
		HTML:        p.HTML,
		Share:       seo.Share(snap.Site.CanonicalURL(p.Path()), p.Title),
	})
}

func (s *Server) writeContentLoading(w http.ResponseWriter, r *http.Request) {
	s.errorAdapter.WriteErrorResponse(w, r, ferrors.RuntimeError("site content is not loaded yet").Build())
}

// canonicalHost redirects requests for the bare canonical host to the
// preferred host of the site domain.
func (s *Server) canonicalHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := s.content.Load().Site
		host := r.Host
		if h, _, found := strings.Cut(host, ":"); found {
			host = h
		}
		if st.CanonicalHost != "" && strings.EqualFold(host, st.CanonicalHost) &&
			!strings.EqualFold(host, st.PreferredHost()) {
			target := st.CanonicalURL(r.URL.Path)
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
