package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/service"
)

func init() {
	Register(&ArchiveCmd{})
}

// ArchiveCmd implements the archive command.
type ArchiveCmd struct{}

func (c *ArchiveCmd) Name() string      { return "archive" }
func (c *ArchiveCmd) Aliases() []string { return []string{"rm"} }
func (c *ArchiveCmd) Synopsis() string  { return "Archive a card" }
func (c *ArchiveCmd) Usage() string     { return "nj archive [common flags] <card>" }
func (c *ArchiveCmd) NeedsAuth() bool   { return true }

func (c *ArchiveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ArchiveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	card, code := lookupCard(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.ArchiveCard(ctx, card.ID); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
