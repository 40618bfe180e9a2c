package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Dist string `short:"d" help:"Dist directory (overrides build.dist_dir)"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	dist := cfg.Build.DistDir
	if v.Dist != "" {
		dist = v.Dist
	}

	rep, err := linkverify.New(dist, cfg.Site.Domain).VerifyDir(g.context())
	if err != nil {
		return err
	}
	for _, b := range rep.Broken {
		_, _ = fmt.Fprintf(g.Out, "%s: %s (%s)\n", b.Page, b.URL, b.Reason)
	}
	_, _ = fmt.Fprintf(g.Out, "Checked %d links on %d pages, %d broken\n", rep.Links, rep.Pages, len(rep.Broken))
	if !rep.OK() {
		return ferrors.ValidationError("broken internal links found").
			WithContext("broken", len(rep.Broken)).Build()
	}
	return nil
}
