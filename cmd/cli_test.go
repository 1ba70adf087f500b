package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-sh/atelier/internal/application"
	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

// setupHome points HOME at a temp directory with a config fixture and a
// concepts directory, so newRootCmd wires against it.
func setupHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".atelier"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(home, "concepts"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(home, "concepts", "pairing.md"),
		[]byte("# Pairing\n\nDrive in short turns.\n"),
		0o600,
	))

	config := `version = 1

[identity]
agent_owner = "agent-owner"

[accounts.agent]
user = "agent-bot"
config_dir = "~/.config/gh-agent"

[accounts.personal]
user = "me"
config_dir = "~/.config/gh"

[concepts]
dir = "~/concepts"
`
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".atelier", "config.toml"),
		[]byte(config),
		0o600,
	))

	return home
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestWhoamiFromRemoteURL(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "", "whoami", "--remote-url", "git@github.com:agent-owner/project.git")
	require.NoError(t, err)
	assert.Contains(t, out, "owner: agent-owner")
	assert.Contains(t, out, "account: agent (agent-bot)")
}

func TestWhoamiFromRemoteURLPersonalFallback(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "", "whoami", "--remote-url", "https://github.com/someone-else/project")
	require.NoError(t, err)
	assert.Contains(t, out, "owner: someone-else")
	assert.Contains(t, out, "account: personal (me)")
}

func TestWhoamiUnknownRemote(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "", "whoami", "--remote-url", "https://gitlab.com/x/y")
	require.NoError(t, err)
	assert.Contains(t, out, "owner: (unknown)")
	assert.Contains(t, out, "account: personal")
}

func TestGHDeniedCommandFailsWithoutSpawning(t *testing.T) {
	setupHome(t)

	_, err := executeCommand(t, "", "gh", "--", "pr", "merge", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestGHRequiresACommand(t *testing.T) {
	setupHome(t)

	_, err := executeCommand(t, "", "gh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a command")
}

func TestConceptsScanFromStdin(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "Use `cf:pairing` and `cf:pairing`, also `cf:ghost`.",
		"concepts", "scan", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "pairing\tx2 (loaded)")
	assert.Contains(t, out, "ghost\tmissing")
}

func TestConceptsScanFromFile(t *testing.T) {
	setupHome(t)

	path := filepath.Join(t.TempDir(), "review.md")
	require.NoError(t, os.WriteFile(path, []byte("Remember `cf:pairing`.\n"), 0o600))

	out, err := executeCommand(t, "", "concepts", "scan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "pairing\tx1 (loaded)")
}

func TestConceptsStatusRendersEmptySession(t *testing.T) {
	setupHome(t)

	out, err := executeCommand(t, "", "concepts", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No concepts referenced this session.")
}

func TestWorkspaceOpenRejectsMalformedRepo(t *testing.T) {
	setupHome(t)

	_, err := executeCommand(t, "", "workspace", "open", "not-a-ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/repo")
}

func TestBrokenConfigSurfacesOnAnyRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".atelier"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(home, ".atelier", "config.toml"),
		[]byte("version = 99\n"),
		0o600,
	))

	_, err := executeCommand(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wire config")
}

type staticRemote string

func (s staticRemote) OriginURL(context.Context, string) (string, error) {
	return string(s), nil
}

type recordingGHRunner struct {
	result ports.RunResult
	argv   []string
}

func (r *recordingGHRunner) Run(_ context.Context, _ domain.Account, argv []string, _ string) (ports.RunResult, error) {
	r.argv = argv
	return r.result, nil
}

type staticConfirmer bool

func (c staticConfirmer) Confirm(context.Context, string) (bool, error) {
	return bool(c), nil
}

// newFakeApp wires an app over in-memory fakes so gh command behavior can
// be tested without subprocesses or a terminal.
func newFakeApp(runner ports.GHRunner, confirmer ports.Confirmer) *app {
	session := application.NewSession()
	identity := application.NewIdentityService(
		staticRemote("git@github.com:someone/project.git"),
		"agent-owner",
		domain.Account{ID: domain.AccountAgent, User: "agent-bot", ConfigDir: "/tmp/gh-agent"},
		domain.Account{ID: domain.AccountPersonal, User: "me", ConfigDir: "/tmp/gh"},
		session,
	)
	return &app{
		session:   session,
		gate:      application.NewGate(),
		identity:  identity,
		ghRunner:  runner,
		confirmer: confirmer,
		workDir:   "/work/project",
	}
}

func TestGHPassesArgvThroughUnsplit(t *testing.T) {
	runner := &recordingGHRunner{result: ports.RunResult{Output: "created\n"}}
	ghCmd := newGHCmd(newFakeApp(runner, staticConfirmer(true)))

	out := &bytes.Buffer{}
	ghCmd.SetOut(out)
	ghCmd.SetErr(out)
	ghCmd.SetArgs([]string{"--", "api", "repos/o/r/issues/5/comments", "-X", "POST", "-f", "body=two words"})

	require.NoError(t, ghCmd.Execute())
	assert.Contains(t, runner.argv, "body=two words")
	assert.Contains(t, out.String(), "created")
}

func TestGHDeclineReportsExactlyOnce(t *testing.T) {
	runner := &recordingGHRunner{}
	ghCmd := newGHCmd(newFakeApp(runner, staticConfirmer(false)))
	// The root command sets SilenceUsage; mirror it here since the
	// subcommand runs standalone in this test.
	ghCmd.SilenceUsage = true

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	ghCmd.SetOut(stdout)
	ghCmd.SetErr(stderr)
	ghCmd.SetArgs([]string{"--", "api", "repos/o/r/issues/5/comments", "-X", "POST", "-f", "body=hi"})

	err := ghCmd.Execute()
	require.ErrorIs(t, err, domain.ErrConfirmDeclined)

	// The decline surfaces through the returned error only; stdout stays
	// silent so the message cannot appear twice.
	assert.Empty(t, stdout.String())
	assert.Nil(t, runner.argv)
}
