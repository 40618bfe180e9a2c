package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/search"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
	Quick bool     `help:"Use the header search bar matching (fewer fields, short excerpts)"`
	Limit int      `short:"n" help:"Maximum number of results (0 = mode default)"`
	JSON  bool     `name:"json" help:"Print results as JSON"`
}

func (s *SearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	lib, err := content.Load(cfg.Content)
	if err != nil {
		return err
	}

	q := search.Query{Text: strings.Join(s.Query, " "), Mode: search.ModeFull, Limit: s.Limit}
	if s.Quick {
		q.Mode = search.ModeQuick
	}
	results := search.FromLibrary(lib).Search(q)

	if s.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	_, _ = fmt.Fprintln(g.Out, search.Summary(strings.TrimSpace(q.Text), len(results)))
	pages, posts := search.Split(results)
	printSection := func(title string, list []search.Result) {
		if len(list) == 0 {
			return
		}
		_, _ = fmt.Fprintf(g.Out, "\n%s (%d)\n", title, len(list))
		for _, r := range list {
			_, _ = fmt.Fprintf(g.Out, "  %s  %s\n", r.Path, r.Title)
			if detail := resultDetail(r); detail != "" {
				_, _ = fmt.Fprintf(g.Out, "      %s\n", detail)
			}
		}
	}
	printSection("Pages", pages)
	printSection("Blog Posts", posts)
	return nil
}

func resultDetail(r search.Result) string {
	if r.Type != search.TypeBlog {
		return r.Description
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Category, r.Author, r.Date} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
