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
	Register(&CommentCmd{})
}

// CommentCmd implements the comment command.
type CommentCmd struct{}

func (c *CommentCmd) Name() string      { return "comment" }
func (c *CommentCmd) Aliases() []string { return nil }
func (c *CommentCmd) Synopsis() string  { return "Add a comment to a card" }
func (c *CommentCmd) Usage() string     { return "nj comment [common flags] <card> <text...>" }
func (c *CommentCmd) NeedsAuth() bool   { return true }

func (c *CommentCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CommentCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if _, err := ParseCardRef(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: comment text required")
		return exitcode.UserError
	}

	card, code := lookupCard(ctx, svc, args, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := svc.AddComment(ctx, card.ID, text); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
