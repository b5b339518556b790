package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/service"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a card to another list" }
func (c *MoveCmd) Usage() string     { return "nj move [common flags] <card> <list-name>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 || strings.TrimSpace(strings.Join(args[1:], " ")) == "" {
		if _, err := ParseCardRef(args); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}
	listName := strings.TrimSpace(strings.Join(args[1:], " "))

	card, code := lookupCard(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	list, err := svc.ResolveList(ctx, listName)
	if err != nil {
		return listFailure(errOut, listName, err)
	}

	if card.ListID == list.ID {
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}

	if err := svc.MoveCard(ctx, card.ID, list.ID); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
