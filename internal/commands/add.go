package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"nj/internal/config"
	"nj/internal/due"
	"nj/internal/exitcode"
	"nj/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	due    string
	labels string
}

// SetDue sets the due expression (for testing).
func (c *AddCmd) SetDue(expr string) {
	c.due = expr
}

// SetLabels sets the comma-separated label names (for testing).
func (c *AddCmd) SetLabels(names string) {
	c.labels = names
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a card" }
func (c *AddCmd) Usage() string {
	return "nj add [common flags] [--due <expr>] [--labels <a,b>] <card-name> <list-name>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.due, "d", "", "")
	fs.StringVar(&c.labels, "labels", "", "")
	fs.StringVar(&c.labels, "l", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	switch {
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		fmt.Fprintln(errOut, "error: card name required")
		return exitcode.UserError
	case len(args) == 1 || strings.TrimSpace(args[1]) == "":
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	case len(args) > 2:
		fmt.Fprintln(errOut, "error: too many arguments (quote the card name)")
		return exitcode.UserError
	}
	name := strings.TrimSpace(args[0])
	listName := strings.TrimSpace(args[1])

	// An invalid due date aborts before any backend call.
	now, _ := clock(cfg)
	dueAt, err := due.Parse(c.due, now)
	if err != nil {
		if errors.Is(err, due.ErrInvalidFormat) {
			fmt.Fprintf(errOut, "error: invalid due date: %s\n", c.due)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	list, err := svc.ResolveList(ctx, listName)
	if err != nil {
		return listFailure(errOut, listName, err)
	}

	labelIDs, code := c.resolveLabels(ctx, svc, errOut)
	if code != exitcode.Success {
		return code
	}

	if _, err := svc.CreateCard(ctx, list.ID, service.NewCard{
		Name:     name,
		Due:      dueAt,
		LabelIDs: labelIDs,
	}); err != nil {
		return backendFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// resolveLabels maps the --labels names to board label IDs.
// Names are trimmed and matched exactly; empty entries are ignored.
func (c *AddCmd) resolveLabels(ctx context.Context, svc service.Service, errOut io.Writer) ([]string, int) {
	var names []string
	for _, n := range strings.Split(c.labels, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, exitcode.Success
	}

	labels, err := svc.Labels(ctx)
	if err != nil {
		return nil, backendFailure(errOut, err)
	}

	byName := make(map[string]string, len(labels))
	for _, l := range labels {
		byName[l.Name] = l.ID
	}

	ids := make([]string, 0, len(names))
	for _, n := range names {
		id, ok := byName[n]
		if !ok {
			fmt.Fprintf(errOut, "error: label not found: %s\n", n)
			return nil, exitcode.UserError
		}
		ids = append(ids, id)
	}
	return ids, exitcode.Success
}
