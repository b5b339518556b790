// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown list or card, bad due date).
	UserError = 1

	// AuthError indicates missing or rejected Trello credentials.
	AuthError = 2

	// BackendError indicates a Trello API or network error.
	BackendError = 3
)
