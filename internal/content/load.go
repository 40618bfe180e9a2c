package content

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/config"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

//go:embed defaults/pages.yaml defaults/blog/*.md
var defaultsFS embed.FS

// Page is one entry of the searchable page index.
type Page struct {
	Title       string   `yaml:"title" json:"title"`
	Path        string   `yaml:"path" json:"path"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
}

// PageIndex is a parsed pages file. QuickPages is the shorter list matched
// by the header search; when empty, quick search uses Pages.
type PageIndex struct {
	Pages      []Page `yaml:"pages"`
	QuickPages []Page `yaml:"quick_pages"`
}

// Library is the loaded content set.
type Library struct {
	Posts      Posts
	Pages      []Page
	QuickPages []Page
}

// Load reads posts and pages as configured. An empty blog dir or pages file
// selects the embedded defaults.
func Load(cfg config.ContentConfig) (*Library, error) {
	lib := &Library{}
	var err error

	if cfg.BlogDir == "" {
		lib.Posts = DefaultPosts()
	} else if lib.Posts, err = LoadPosts(cfg.BlogDir); err != nil {
		return nil, err
	}

	index := defaultPageIndex()
	if cfg.PagesFile != "" {
		if index, err = LoadPages(cfg.PagesFile); err != nil {
			return nil, err
		}
	}
	lib.Pages, lib.QuickPages = index.Pages, index.QuickPages

	slog.Debug("Content loaded",
		slog.Int("posts", len(lib.Posts)),
		slog.Int("pages", len(lib.Pages)),
		slog.Int("quick_pages", len(lib.QuickPages)),
		slog.String("fingerprint", lib.Posts.Fingerprint()))
	return lib, nil
}

// LoadPosts reads every *.md file below dir.
func LoadPosts(dir string) (Posts, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryContent, "blog directory not readable").
			Fatal().WithContext("path", dir).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.ContentError("blog path is not a directory").WithContext("path", dir).Build()
	}
	return LoadPostsFS(os.DirFS(dir), ".")
}

// LoadPostsFS reads every *.md file below root in fsys. Files whose name
// starts with "_" or "." are skipped.
func LoadPostsFS(fsys fs.FS, root string) (Posts, error) {
	var list []Post
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if path.Ext(name) != ".md" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		post, err := ParsePost(p, data)
		if err != nil {
			return err
		}
		slog.Debug("Loaded post", logfields.PostID(post.ID), logfields.File(p))
		list = append(list, post)
		return nil
	})
	if err != nil {
		if ferrors.IsClassified(err) {
			return nil, err
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to walk blog directory").Build()
	}
	return newPosts(list)
}

// LoadPages reads a YAML page index file.
func LoadPages(file string) (PageIndex, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return PageIndex{}, ferrors.WrapError(err, ferrors.CategoryContent, "pages file not readable").
			Fatal().WithContext("path", file).Build()
	}
	return ParsePages(data)
}

// ParsePages decodes a document with a `pages:` list and an optional
// `quick_pages:` list.
func ParsePages(data []byte) (PageIndex, error) {
	var doc PageIndex
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return PageIndex{}, ferrors.WrapError(err, ferrors.CategoryContent, "failed to parse pages").Build()
	}
	for section, list := range map[string][]Page{"pages": doc.Pages, "quick_pages": doc.QuickPages} {
		if err := validatePages(section, list); err != nil {
			return PageIndex{}, err
		}
	}
	return doc, nil
}

func validatePages(section string, pages []Page) error {
	for i, p := range pages {
		if strings.TrimSpace(p.Title) == "" {
			return ferrors.ContentError("page title is required").
				WithContext("section", section).WithContext("index", i).Build()
		}
		if !strings.HasPrefix(p.Path, "/") {
			return ferrors.ContentError("page path must start with '/'").
				WithContext("section", section).WithContext("index", i).WithContext("path", p.Path).Build()
		}
	}
	return nil
}

// DefaultPosts returns the posts embedded in the binary.
func DefaultPosts() Posts {
	sub, err := fs.Sub(defaultsFS, "defaults/blog")
	if err != nil {
		panic(err)
	}
	posts, err := LoadPostsFS(sub, ".")
	if err != nil {
		panic(err)
	}
	return posts
}

// DefaultPages returns the embedded page index.
func DefaultPages() []Page {
	return defaultPageIndex().Pages
}

// DefaultQuickPages returns the embedded header search page list.
func DefaultQuickPages() []Page {
	return defaultPageIndex().QuickPages
}

func defaultPageIndex() PageIndex {
	data, err := defaultsFS.ReadFile("defaults/pages.yaml")
	if err != nil {
		panic(err)
	}
	index, err := ParsePages(data)
	if err != nil {
		panic(err)
	}
	return index
}
