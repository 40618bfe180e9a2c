package server

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const notFoundDocument = "404.html"

// staticHandler serves the prerendered site. "/about" and "/about/" resolve to
// about/index.html; anything missing gets 404.html with status 404.
type staticHandler struct {
	dist string
}

func (h staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if full, ok := h.resolve(clean); ok {
		if strings.HasPrefix(clean, "/assets/") {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else if strings.HasSuffix(full, ".html") {
			w.Header().Set("Cache-Control", "no-cache")
		}
		if err := serveFile(w, r, full, http.StatusOK); err == nil {
			return
		}
	}
	h.notFound(w, r)
}

// resolve maps a cleaned URL path to a regular file inside dist.
func (h staticHandler) resolve(clean string) (string, bool) {
	rel := filepath.FromSlash(strings.TrimPrefix(clean, "/"))
	if strings.HasPrefix(path.Base(clean), ".") {
		return "", false
	}
	full := filepath.Join(h.dist, rel)
	st, err := os.Stat(full)
	if err == nil && !st.IsDir() {
		return full, true
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false
	}
	if err == nil || path.Ext(clean) == "" {
		index := filepath.Join(full, "index.html")
		if st, err := os.Stat(index); err == nil && !st.IsDir() {
			return index, true
		}
	}
	return "", false
}

func (h staticHandler) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	if err := serveFile(w, r, filepath.Join(h.dist, notFoundDocument), http.StatusNotFound); err != nil {
		http.NotFound(w, r)
	}
}

// serveFile writes the file at full with status. Non-200 statuses bypass
// conditional request handling.
func serveFile(w http.ResponseWriter, r *http.Request, full string, status int) error {
	f, err := os.Open(full)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		http.ServeContent(w, r, st.Name(), st.ModTime(), f)
		return nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(data)
	}
	return nil
}
