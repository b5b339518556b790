package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/output"
	"nj/internal/rebalance"
	"nj/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `nj` (no args) and `nj list <list-name>`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List the cards of a list, soonest due first" }
func (c *ListCmd) Usage() string     { return "nj list [common flags] [<list-name>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return c.listAll(ctx, cfg, svc, out, errOut)
	}

	listName := strings.Join(args, " ")
	return c.listOne(ctx, cfg, svc, listName, out, errOut)
}

// listAll prints every non-empty list that is not skipped.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	lists, err := svc.Lists(ctx)
	if err != nil {
		return backendFailure(errOut, err)
	}

	f := formatter(cfg)
	hasAnyCards := false

	for _, list := range lists {
		if cfg.Skipped(list.Name) {
			continue
		}

		cards, err := svc.ListCards(ctx, list.ID)
		if err != nil {
			// Partial failure: what was printed stays, then error
			fmt.Fprintf(errOut, "error: failed to fetch list: %s: %v\n", list.Name, err)
			return exitcode.BackendError
		}
		if len(cards) == 0 {
			continue
		}

		f.ListHeader(out, list.Name)
		printCards(out, f, cards)
		hasAnyCards = true
	}

	if !hasAnyCards && !cfg.Quiet {
		fmt.Fprintln(out, "no cards found")
	}

	return exitcode.Success
}

// listOne prints the cards of a single list, even when it is skipped or empty.
func (c *ListCmd) listOne(ctx context.Context, cfg *config.Config, svc service.Service, listName string, out, errOut io.Writer) int {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := svc.ResolveList(ctx, listName)
	if err != nil {
		return listFailure(errOut, listName, err)
	}

	cards, err := svc.ListCards(ctx, list.ID)
	if err != nil {
		return backendFailure(errOut, err)
	}

	f := formatter(cfg)
	f.ListHeader(out, list.Name)
	printCards(out, f, cards)

	return exitcode.Success
}

// printCards prints cards ordered by due date, undated cards last.
func printCards(out io.Writer, f *output.Formatter, cards []service.Card) {
	for _, card := range rebalance.SortByDue(cards) {
		f.Card(out, card)
	}
}

// clock returns the current time and display zone for cfg.
func clock(cfg *config.Config) (time.Time, *time.Location) {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return cfg.Now().In(loc), loc
}

// formatter returns the output formatter for cfg.
func formatter(cfg *config.Config) *output.Formatter {
	now, loc := clock(cfg)
	return output.NewFormatter(cfg.Color, now, loc)
}
