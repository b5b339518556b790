package cli_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nj/internal/cli"
	"nj/internal/commands"
	"nj/internal/config"
	"nj/internal/exitcode"
	"nj/internal/service"
	"nj/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func failingFactory(err error) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, err
	}
}

// run dispatches args with an empty config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "nj 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, dispatcher, "add", "--due")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsRunsOverview(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list-todo", "To Do")
	svc.AddCard(service.Card{ID: "5f000000000000000000aa01", Name: "Renew passport", ListID: "list-todo"})
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "a01 Unscheduled Renew passport") {
		t.Errorf("expected overview output, got %q", stdout)
	}
}

func TestDispatcher_AliasAndFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list-todo", "To Do")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "create", "--config", t.TempDir(), "--quiet", "--due", "tomorrow", "Buy milk", "To Do")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
	card, ok := svc.Card("new000001")
	if !ok || card.Due == nil {
		t.Fatalf("expected card with due date, got %+v", card)
	}
}

func TestDispatcher_MissingCredentials(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvToken, "")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, dispatcher, "lists", "--config", t.TempDir())

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "missing Trello credentials") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{
			"missing credentials",
			fmt.Errorf("%w: set TRELLO_TOKEN", config.ErrMissingCredentials),
			exitcode.AuthError,
			"error: auth error: missing Trello credentials: set TRELLO_TOKEN\n",
		},
		{
			"rejected token",
			service.ErrUnauthorized,
			exitcode.AuthError,
			"error: auth error: unauthorized\n",
		},
		{
			"board not found",
			fmt.Errorf("board %q: %w", "Backlog", service.ErrNotFound),
			exitcode.UserError,
			"error: board \"Backlog\": not found\n",
		},
		{
			"network",
			errors.New("dial tcp: connection refused"),
			exitcode.BackendError,
			"error: backend error: dial tcp: connection refused\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, failingFactory(tt.err))

			_, stderr, code := run(t, dispatcher, "lists", "--config", t.TempDir())

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
		})
	}
}

func TestDispatcher_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("board: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "lists", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error: invalid config.yaml") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// configCmd records the config it was run with.
type configCmd struct {
	cfg *config.Config
}

func (c *configCmd) Name() string                   { return "config" }
func (c *configCmd) Aliases() []string              { return nil }
func (c *configCmd) Synopsis() string               { return "Record config" }
func (c *configCmd) Usage() string                  { return "nj config" }
func (c *configCmd) NeedsAuth() bool                { return false }
func (c *configCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *configCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	c.cfg = cfg
	return exitcode.Success
}

func TestDispatcher_Color(t *testing.T) {
	t.Setenv(config.EnvNoColor, "")

	tests := []struct {
		name     string
		terminal bool
		args     []string
		want     bool
	}{
		{"terminal", true, nil, true},
		{"no-color flag", true, []string{"--no-color"}, false},
		{"piped", false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &configCmd{}
			registry := commands.NewRegistry()
			if err := registry.Register(cmd); err != nil {
				t.Fatal(err)
			}
			dispatcher := cli.NewDispatcher(registry, nil)
			terminal := tt.terminal
			dispatcher.IsTerminal = func() bool { return terminal }

			args := append([]string{"config", "--config", t.TempDir()}, tt.args...)
			_, stderr, code := run(t, dispatcher, args...)

			if code != exitcode.Success {
				t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
			}
			if cmd.cfg.Color != tt.want {
				t.Errorf("expected color %v, got %v", tt.want, cmd.cfg.Color)
			}
		})
	}
}

func TestDispatcher_NoColorEnv(t *testing.T) {
	t.Setenv(config.EnvNoColor, "1")

	cmd := &configCmd{}
	registry := commands.NewRegistry()
	if err := registry.Register(cmd); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(registry, nil)
	dispatcher.IsTerminal = func() bool { return true }

	run(t, dispatcher, "config", "--config", t.TempDir())

	if cmd.cfg == nil || cmd.cfg.Color {
		t.Error("expected NO_COLOR to disable color")
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("list-todo", "To Do")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "lists", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "To Do\n" {
		t.Errorf("expected list output on stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "dispatching") || !strings.Contains(stderr, "command=lists") {
		t.Errorf("expected debug log on stderr, got %q", stderr)
	}
}
