package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	conceptfs "github.com/atelier-sh/atelier/internal/adapters/concepts/fs"
	"github.com/atelier-sh/atelier/internal/adapters/config"
	"github.com/atelier-sh/atelier/internal/adapters/confirm"
	"github.com/atelier-sh/atelier/internal/adapters/execrunner"
	"github.com/atelier-sh/atelier/internal/adapters/gh"
	"github.com/atelier-sh/atelier/internal/adapters/git"
	"github.com/atelier-sh/atelier/internal/adapters/tmux"
	"github.com/atelier-sh/atelier/internal/application"
	"github.com/atelier-sh/atelier/internal/ports"
)

type app struct {
	cfg        config.Config
	session    *application.Session
	gate       *application.Gate
	identity   *application.IdentityService
	concepts   *application.ConceptService
	workspaces *application.WorkspaceService
	ghRunner   ports.GHRunner
	confirmer  ports.Confirmer
	workDir    string
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire config: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	runner := execrunner.New()
	session := application.NewSession()
	identity := application.NewIdentityService(
		git.NewRemoteReader(runner),
		cfg.AgentOwner,
		cfg.Agent,
		cfg.Personal,
		session,
	)

	return &app{
		cfg:        cfg,
		session:    session,
		gate:       application.NewGate(),
		identity:   identity,
		concepts:   application.NewConceptService(conceptfs.NewSource(cfg.ConceptsDir), session),
		workspaces: application.NewWorkspaceService(tmux.NewClient(runner), cfg.ReposRoot, cfg.AgentCommand),
		ghRunner:   gh.NewCLI(runner),
		confirmer:  confirm.Prompt{},
		workDir:    workDir,
	}, nil
}

func (a *app) newExecutor(confirmer ports.Confirmer) *application.GHExecutor {
	return application.NewGHExecutor(a.gate, a.identity, a.ghRunner, confirmer)
}
