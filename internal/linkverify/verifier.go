package linkverify

import (
	"context"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// BrokenLink is an internal link that does not resolve inside dist.
type BrokenLink struct {
	Page   string // dist-relative HTML file containing the link
	URL    string // link as written
	Tag    string
	Reason string
}

// Report summarises one verification run.
type Report struct {
	Pages  int
	Links  int
	Broken []BrokenLink
}

// OK reports whether no broken links were found.
func (r Report) OK() bool { return len(r.Broken) == 0 }

// Verifier checks internal links of generated documents against the files in
// a dist directory.
type Verifier struct {
	distDir string
	baseURL string
}

// New returns a Verifier for distDir. baseURL is the public site origin;
// absolute links on the same host are resolved locally.
func New(distDir, baseURL string) *Verifier {
	return &Verifier{distDir: distDir, baseURL: baseURL}
}

// VerifyDir walks dist and verifies every HTML file in it.
func (v *Verifier) VerifyDir(ctx context.Context) (Report, error) {
	var pages []string
	err := filepath.WalkDir(v.distDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".html") {
			rel, relErr := filepath.Rel(v.distDir, p)
			if relErr != nil {
				return relErr
			}
			pages = append(pages, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return Report{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk dist directory").
			WithContext("dist_dir", v.distDir).Build()
	}
	sort.Strings(pages)
	return v.VerifyPages(ctx, pages)
}

// VerifyPages verifies the given dist-relative HTML files.
func (v *Verifier) VerifyPages(ctx context.Context, pages []string) (Report, error) {
	var rep Report
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		links, err := ExtractLinks(filepath.Join(v.distDir, filepath.FromSlash(page)), v.baseURL)
		if err != nil {
			return rep, err
		}
		rep.Pages++
		for _, l := range links {
			if !ShouldVerifyLink(l) {
				continue
			}
			rep.Links++
			if reason := v.resolve(page, l.URL); reason != "" {
				rep.Broken = append(rep.Broken, BrokenLink{Page: page, URL: l.URL, Tag: l.Tag, Reason: reason})
				slog.Warn("Broken internal link",
					logfields.File(page),
					logfields.URL(l.URL),
					slog.String("reason", reason))
			}
		}
	}
	return rep, nil
}

// resolve returns "" when linkURL maps to a file in dist, otherwise a reason.
func (v *Verifier) resolve(page, linkURL string) string {
	local, err := LocalPath(page, linkURL)
	if err != nil {
		return "unparseable url"
	}
	if local == "" {
		return ""
	}
	full := filepath.Join(v.distDir, filepath.FromSlash(local))
	if st, err := os.Stat(full); err == nil {
		if !st.IsDir() {
			return ""
		}
		full = filepath.Join(full, "index.html")
	} else if path.Ext(local) == "" {
		full = filepath.Join(full, "index.html")
	}
	if _, err := os.Stat(full); err != nil {
		return "not found"
	}
	return ""
}

// LocalPath maps linkURL, found on the dist-relative page, to a dist-relative
// path. Query strings and fragments are dropped; "" means the site root.
func LocalPath(page, linkURL string) (string, error) {
	u, err := url.Parse(linkURL)
	if err != nil {
		return "", err
	}
	p := u.Path
	if p == "" {
		return "", nil
	}
	if !strings.HasPrefix(p, "/") {
		p = path.Join(path.Dir("/"+page), p)
	}
	p = strings.TrimPrefix(path.Clean(p), "/")
	if p == "." {
		return "", nil
	}
	return p, nil
}
