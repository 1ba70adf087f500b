package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	dir := filepath.Join(home, ".atelier")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestLoadFullConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `version = 1

[identity]
agent_owner = "agent-owner"

[accounts.agent]
user = "agent-bot"
config_dir = "~/.config/gh-agent"

[accounts.personal]
user = "me"
config_dir = "~/.config/gh"

[concepts]
dir = "~/notes/concepts"

[workspaces]
repos_root = "~/src"
agent_command = ["crush", "--yolo"]
default_model = "big"
default_thinking = "high"

[github]
auto_confirm = true
`)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "agent-owner", cfg.AgentOwner)
	assert.Equal(t, "agent-bot", cfg.Agent.User)
	assert.Equal(t, filepath.Join(home, ".config", "gh-agent"), cfg.Agent.ConfigDir)
	assert.Equal(t, filepath.Join(home, ".config", "gh"), cfg.Personal.ConfigDir)
	assert.Equal(t, filepath.Join(home, "notes", "concepts"), cfg.ConceptsDir)
	assert.Equal(t, filepath.Join(home, "src"), cfg.ReposRoot)
	assert.Equal(t, []string{"crush", "--yolo"}, cfg.AgentCommand)
	assert.Equal(t, "big", cfg.DefaultModel)
	assert.Equal(t, "high", cfg.DefaultThinking)
	assert.True(t, cfg.AutoConfirm)
}

func TestLoadMissingFileAppliesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Empty(t, cfg.AgentOwner)
	assert.Equal(t, []string{"agent"}, cfg.AgentCommand)
	assert.False(t, cfg.AutoConfirm)
}

func TestLoadRejectsFutureSchemaVersion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "version = 99\n")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config schema version")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "identity = not toml [")

	_, err := Load(viper.New())
	require.Error(t, err)
}
