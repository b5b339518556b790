package commands

import (
	"context"
	"flag"
	"io"

	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a card with its comments" }
func (c *ShowCmd) Usage() string     { return "nj show [common flags] <card>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	card, code := lookupCard(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	var comments []service.Comment
	if card.Comments > 0 {
		var err error
		comments, err = svc.Comments(ctx, card.ID)
		if err != nil {
			return backendFailure(errOut, err)
		}
	}

	formatter(cfg).CardDetail(out, card, comments)
	return exitcode.Success
}
