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
	Register(&ListsCmd{})
	Register(&LabelsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print board lists in board order" }
func (c *ListsCmd) Usage() string     { return "nj lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	lists, err := svc.Lists(ctx)
	if err != nil {
		return backendFailure(errOut, err)
	}

	f := formatter(cfg)
	for _, list := range lists {
		f.ListName(out, list)
	}
	return exitcode.Success
}

// LabelsCmd implements the labels command.
type LabelsCmd struct{}

func (c *LabelsCmd) Name() string      { return "labels" }
func (c *LabelsCmd) Aliases() []string { return nil }
func (c *LabelsCmd) Synopsis() string  { return "Print board labels in their colors" }
func (c *LabelsCmd) Usage() string     { return "nj labels [common flags]" }
func (c *LabelsCmd) NeedsAuth() bool   { return true }

func (c *LabelsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LabelsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	labels, err := svc.Labels(ctx)
	if err != nil {
		return backendFailure(errOut, err)
	}

	f := formatter(cfg)
	for _, label := range labels {
		f.Label(out, label)
	}
	return exitcode.Success
}
