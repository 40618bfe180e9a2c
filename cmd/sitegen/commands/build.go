package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitegen/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Dist        string `short:"d" help:"Dist directory (overrides build.dist_dir)"`
	Incremental bool   `short:"i" help:"Only rewrite files whose content changed"`
	VerifyLinks bool   `name:"verify-links" help:"Fail when generated pages contain broken internal links"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if b.Dist != "" {
		cfg.Build.DistDir = b.Dist
	}
	if b.Incremental {
		cfg.Build.Incremental = true
	}
	if b.VerifyLinks {
		cfg.Build.VerifyLinks = true
	}

	res, err := build.NewBuildService().Run(g.context(), build.Request{Config: cfg, Reason: "cli"})
	if err != nil {
		return err
	}
	out := res.Prerender
	_, _ = fmt.Fprintf(g.Out, "Prerendered %d routes + 404 page into %s (%d written, %d unchanged) in %s\n",
		out.Generated-1, cfg.Build.DistDir, len(out.Files), out.Skipped, out.Duration.Round(1e6))
	if out.Links != nil {
		_, _ = fmt.Fprintf(g.Out, "Verified %d links on %d pages\n", out.Links.Links, out.Links.Pages)
	}
	return nil
}
