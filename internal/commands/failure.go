package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"nj/internal/exitcode"
	"nj/internal/service"
)

// backendFailure reports a failed backend call and returns its exit code.
func backendFailure(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrUnauthorized) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// listFailure reports a failed list resolution.
func listFailure(errOut io.Writer, name string, err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		return exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return exitcode.UserError
	}
	return backendFailure(errOut, err)
}

// cardFailure reports a failed card lookup.
func cardFailure(errOut io.Writer, ref string, err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: card not found: %s\n", ref)
		return exitcode.UserError
	case errors.Is(err, service.ErrAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous card reference: %s\n", ref)
		return exitcode.UserError
	}
	return backendFailure(errOut, err)
}

// lookupCard parses the card reference in args and finds the card.
// On failure it writes the error and returns a non-zero exit code.
func lookupCard(ctx context.Context, svc service.Service, args []string, errOut io.Writer) (service.Card, int) {
	ref, err := ParseCardRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Card{}, exitcode.UserError
	}

	card, err := FindCard(ctx, svc, ref)
	if err != nil {
		return service.Card{}, cardFailure(errOut, ref, err)
	}
	return card, exitcode.Success
}
