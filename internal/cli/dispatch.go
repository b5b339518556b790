package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"nj/internal/commands"
	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory

	// IsTerminal reports whether stdout is a terminal. Color is off when nil.
	IsTerminal func() bool
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> overview of the board
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Common flags
	var configDir string
	var quiet, debug, noColor bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&quiet, "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	fs.BoolVar(&noColor, "no-color", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	// A leading dash left after parsing is a flag the set does not know
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	setupLogging(errOut, debug)

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	isTerminal := d.IsTerminal != nil && d.IsTerminal()
	cfg.Color = cfg.Color && !noColor && isTerminal

	log.WithFields(log.Fields{
		"command": cmd.Name(),
		"config":  cfg.Dir,
		"board":   cfg.Board,
	}).Debug("dispatching")

	var svc service.Service
	if cmd.NeedsAuth() {
		if d.factory == nil {
			if err := cfg.CheckCredentials(); err != nil {
				fmt.Fprintf(errOut, "error: %s\n", err)
				return exitcode.AuthError
			}
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.BackendError
		}

		svc, err = d.factory(ctx, cfg)
		if err != nil {
			return factoryFailure(errOut, err)
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// factoryFailure reports a backend that could not be set up.
func factoryFailure(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, config.ErrMissingCredentials), errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %s\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", err)
	return exitcode.BackendError
}

// flagError rewrites flag package errors into the CLI's wording.
func flagError(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + flagName
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + flagName
	}

	return errStr
}

// setupLogging sends logs to errOut, at debug level when requested.
func setupLogging(errOut io.Writer, debug bool) {
	log.SetOutput(errOut)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
