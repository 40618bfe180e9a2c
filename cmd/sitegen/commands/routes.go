package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitegen/internal/build"
	"git.home.luguber.info/inful/sitegen/internal/routes"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	Manifest bool `help:"Print the table as a YAML route manifest"`
	Sorted   bool `short:"s" help:"List routes ordered by path instead of table order"`
}

func (r *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	_, table, err := build.LoadSite(cfg)
	if err != nil {
		return err
	}
	if r.Manifest {
		return routes.Encode(g.Out, table)
	}

	list := table.Routes()
	if r.Sorted {
		list = table.Sorted()
	}
	tw := tabwriter.NewWriter(g.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tTYPE\tTITLE")
	for _, rt := range list {
		title := rt.Title
		if rt.NoIndex {
			title += " (noindex)"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Path, rt.OGType, title)
	}
	return tw.Flush()
}
