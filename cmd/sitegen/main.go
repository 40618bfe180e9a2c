package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/cmd/sitegen/commands"
	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegen/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sitegen"),
		kong.Description("Prerender and serve the firm website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(commands.NewGlobal(ctx, os.Stdout), cli)
	if err == nil {
		return
	}
	adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, nil)
	adapter.Log(err)
	fmt.Fprintln(os.Stderr, adapter.FormatError(err))
	stop()
	os.Exit(adapter.ExitCodeFor(err)) //nolint:gocritic // stop already called
}
