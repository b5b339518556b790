package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/rebalance"
	"nj/internal/service"
)

func init() {
	Register(&SortCmd{})
}

// SortCmd implements the sort command.
type SortCmd struct {
	dryRun bool
}

// SetDryRun sets dry-run mode (for testing).
func (c *SortCmd) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

func (c *SortCmd) Name() string      { return "sort" }
func (c *SortCmd) Aliases() []string { return nil }
func (c *SortCmd) Synopsis() string  { return "Order cards in every list by due date" }
func (c *SortCmd) Usage() string     { return "nj sort [common flags] [--dry-run]" }
func (c *SortCmd) NeedsAuth() bool   { return true }

func (c *SortCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
	fs.BoolVar(&c.dryRun, "n", false, "")
}

func (c *SortCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	lists, err := svc.Lists(ctx)
	if err != nil {
		return backendFailure(errOut, err)
	}

	moved, sorted := 0, 0
	for _, list := range lists {
		if cfg.Skipped(list.Name) {
			log.WithField("list", list.Name).Debug("skipping list")
			continue
		}

		cards, err := svc.ListCards(ctx, list.ID)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to fetch list: %s: %v\n", list.Name, err)
			return exitcode.BackendError
		}
		if len(cards) == 0 {
			continue
		}

		changes := rebalance.Rebalance(cards)
		log.WithFields(log.Fields{
			"list":    list.Name,
			"cards":   len(cards),
			"changes": len(changes),
		}).Debug("rebalanced list")

		if !c.dryRun {
			// Applied one at a time; a failure leaves earlier updates in place.
			for _, ch := range changes {
				if err := svc.SetPosition(ctx, ch.CardID, ch.Position); err != nil {
					return backendFailure(errOut, fmt.Errorf("set position of card %s: %w", ch.CardID, err))
				}
				log.WithFields(log.Fields{
					"card":     ch.CardID,
					"position": ch.Position,
				}).Debug("card position updated")
			}
		}

		moved += len(changes)
		sorted++
	}

	if !cfg.Quiet {
		verb := "moved"
		if c.dryRun {
			verb = "would move"
		}
		fmt.Fprintf(out, "%s %d cards in %d lists\n", verb, moved, sorted)
	}
	return exitcode.Success
}
