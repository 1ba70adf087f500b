package config

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version    int              `toml:"version"`
	Identity   identitySchema   `toml:"identity"`
	Accounts   accountsSchema   `toml:"accounts"`
	Concepts   conceptsSchema   `toml:"concepts"`
	Workspaces workspacesSchema `toml:"workspaces"`
	GitHub     githubSchema     `toml:"github"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if len(s.Workspaces.AgentCommand) == 0 {
		s.Workspaces.AgentCommand = []string{"agent"}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type identitySchema struct {
	AgentOwner string `toml:"agent_owner"`
}

type accountsSchema struct {
	Agent    accountSchema `toml:"agent"`
	Personal accountSchema `toml:"personal"`
}

type accountSchema struct {
	User      string `toml:"user"`
	ConfigDir string `toml:"config_dir"`
}

type conceptsSchema struct {
	Dir string `toml:"dir"`
}

type workspacesSchema struct {
	ReposRoot       string   `toml:"repos_root"`
	AgentCommand    []string `toml:"agent_command"`
	DefaultModel    string   `toml:"default_model"`
	DefaultThinking string   `toml:"default_thinking"`
}

type githubSchema struct {
	AutoConfirm bool `toml:"auto_confirm"`
}
