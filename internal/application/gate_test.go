package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-sh/atelier/internal/domain"
)

func TestGateAllowsExactSubcommands(t *testing.T) {
	gate := NewGate()

	for _, raw := range []string{
		"pr list",
		"pr view 12",
		"pr diff 12",
		"pr checks 12",
		"pr status",
		"issue list",
		"issue view 4",
		"repo view",
		"search prs --author me",
	} {
		decision, err := gate.Check(strings.Fields(raw))
		require.NoError(t, err, "command %q", raw)
		assert.False(t, decision.Confirm, "command %q", raw)
	}
}

func TestGateRejectsUnknownSubcommandNamingAllowedSet(t *testing.T) {
	gate := NewGate()

	_, err := gate.Check([]string{"pr", "merge", "5"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
	assert.Contains(t, err.Error(), "pr merge")
	assert.Contains(t, err.Error(), "checks, diff, list, status, view")
}

func TestGateRejectsUnknownCommandNamingAllowedCommands(t *testing.T) {
	gate := NewGate()

	_, err := gate.Check([]string{"gist", "create"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
	assert.Contains(t, err.Error(), "api, issue, pr, repo, search")
}

func TestGateAPIMethodRestrictions(t *testing.T) {
	gate := NewGate()

	decision, err := gate.Check([]string{"api", "repos/o/r/pulls/3/comments/9/replies", "-X", "POST", "-f", "body=hi"})
	require.NoError(t, err)
	assert.True(t, decision.Confirm)

	_, err = gate.Check([]string{"api", "repos/o/r/pulls/3/comments/9/replies"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
	assert.Contains(t, err.Error(), "allowed methods: POST")

	decision, err = gate.Check([]string{"api", "repos/o/r/pulls/comments/9"})
	require.NoError(t, err)
	assert.False(t, decision.Confirm, "GET on a comment-edit endpoint needs no confirmation")

	decision, err = gate.Check([]string{"api", "repos/o/r/pulls/comments/9", "-X", "PATCH", "-f", "body=edited"})
	require.NoError(t, err)
	assert.True(t, decision.Confirm)

	_, err = gate.Check([]string{"api", "repos/o/r/pulls/comments/9", "-X", "DELETE"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
	assert.Contains(t, err.Error(), "GET, PATCH")
}

func TestGateAPIFlagValueCannotSmuggleAnEndpoint(t *testing.T) {
	gate := NewGate()

	// The --jq value looks like an allowed endpoint, but gh would execute
	// the trailing token. The gate must judge the real endpoint.
	_, err := gate.Check([]string{"api", "--jq", "repos/o/r/pulls/3/comments", "orgs/secret"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
	assert.Contains(t, err.Error(), "orgs/secret")

	// Two positional tokens are never a valid api invocation.
	_, err = gate.Check([]string{"api", "repos/o/r/pulls/3/comments", "orgs/secret"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
}

func TestGateAllowsFlagValuesAfterTheEndpoint(t *testing.T) {
	gate := NewGate()

	decision, err := gate.Check([]string{"api", "repos/o/r/pulls/3/comments", "--jq", ".[].body"})
	require.NoError(t, err)
	assert.Equal(t, "repos/o/r/pulls/3/comments", decision.Cmd.Endpoint)
	assert.False(t, decision.Confirm)
}

func TestGateKeepsSpacedTokensWhole(t *testing.T) {
	gate := NewGate()

	decision, err := gate.Check([]string{"api", "repos/o/r/issues/5/comments", "-X", "POST", "-f", "body=two words"})
	require.NoError(t, err)
	assert.True(t, decision.Confirm)
	assert.Contains(t, decision.Cmd.Argv, "body=two words")
}

func TestGateAPISegmentCountsMustMatch(t *testing.T) {
	gate := NewGate()

	// One segment short and one segment long of any allowed pattern.
	for _, raw := range []string{
		"api repos/o/r/pulls/comments",
		"api repos/o/r/pulls/3/comments/9/replies/extra -X POST",
	} {
		_, err := gate.Check(strings.Fields(raw))
		require.ErrorIs(t, err, domain.ErrCommandDenied, "command %q", raw)
		assert.Contains(t, err.Error(), "allowed endpoints:")
	}
}

func TestGateWildcardIsSingleSegment(t *testing.T) {
	gate := NewGate()

	// "3/comments/9" must not collapse into one wildcard segment.
	_, err := gate.Check([]string{"api", "repos/o/r/pulls/comments", "-X", "GET"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
}

func TestGateRejectsMalformedCommand(t *testing.T) {
	gate := NewGate()

	_, err := gate.Check(nil)
	require.ErrorIs(t, err, domain.ErrCommandDenied)

	_, err = gate.Check([]string{"api"})
	require.ErrorIs(t, err, domain.ErrCommandDenied)
}
