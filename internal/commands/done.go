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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	listName string
}

// SetListName sets the destination list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Move a card to the done list" }
func (c *DoneCmd) Usage() string     { return "nj done [common flags] [--list <list-name>] <card>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.DoneList
	}
	if listName == "" {
		listName = config.DefaultDoneList
	}

	card, code := lookupCard(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	list, err := svc.ResolveList(ctx, listName)
	if err != nil {
		return listFailure(errOut, listName, err)
	}

	if card.ListID != list.ID {
		if err := svc.MoveCard(ctx, card.ID, list.ID); err != nil {
			return backendFailure(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
