package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/tagpages/cmd/tagpages/commands"
	derrors "git.home.luguber.info/inful/tagpages/internal/foundation/errors"
	"git.home.luguber.info/inful/tagpages/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("tagpages"),
		kong.Description("Group content by tag and generate paginated tag pages."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Stdout: os.Stdout}, cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
