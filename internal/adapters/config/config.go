// Package config loads the atelier configuration file. Viper locates the
// file (and allows ATELIER_* environment overrides for the path); the
// content itself is decoded against a strict TOML schema.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/atelier-sh/atelier/internal/domain"
)

const (
	configName     = "config"
	configType     = "toml"
	configPathKey  = "config.path"
	configHomeDir  = ".atelier"
	configFileName = "config.toml"
)

// Config is the decoded, path-expanded runtime configuration.
type Config struct {
	AgentOwner string
	Agent      domain.Account
	Personal   domain.Account

	ConceptsDir string

	ReposRoot       string
	AgentCommand    []string
	DefaultModel    string
	DefaultThinking string

	AutoConfirm bool
}

// Load reads ~/.atelier/config.toml. A missing file yields a zero-value
// config with defaults applied; a malformed or future-versioned file is an
// error.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configHomeDir, configFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configHomeDir))
	cfg.SetDefault(configPathKey, defaultPath)
	cfg.SetEnvPrefix("ATELIER")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(configPathKey)
	if path == "" {
		path = defaultPath
	}

	file, err := readSchema(path)
	if err != nil {
		return Config{}, err
	}

	return fromSchema(file, homeDir), nil
}

func readSchema(path string) (fileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func fromSchema(file fileSchema, homeDir string) Config {
	return Config{
		AgentOwner: file.Identity.AgentOwner,
		Agent: domain.Account{
			ID:        domain.AccountAgent,
			User:      file.Accounts.Agent.User,
			ConfigDir: expandHome(file.Accounts.Agent.ConfigDir, homeDir),
		},
		Personal: domain.Account{
			ID:        domain.AccountPersonal,
			User:      file.Accounts.Personal.User,
			ConfigDir: expandHome(file.Accounts.Personal.ConfigDir, homeDir),
		},
		ConceptsDir:     expandHome(file.Concepts.Dir, homeDir),
		ReposRoot:       expandHome(file.Workspaces.ReposRoot, homeDir),
		AgentCommand:    file.Workspaces.AgentCommand,
		DefaultModel:    file.Workspaces.DefaultModel,
		DefaultThinking: file.Workspaces.DefaultThinking,
		AutoConfirm:     file.GitHub.AutoConfirm,
	}
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
