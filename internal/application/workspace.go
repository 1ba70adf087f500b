package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

const orientPreamble = `Orient yourself first: read the repository layout, recent
commits, and any top-level docs before acting on the task below.`

// OpenParams describes one workspace-open request.
type OpenParams struct {
	Repo     domain.RepoRef
	Model    string
	Thinking string
	Context  string
	Prompt   string
	Orient   bool
}

// WorkspaceService opens terminal-multiplexer windows rooted at local repo
// checkouts and starts the agent process there.
type WorkspaceService struct {
	mux          ports.Multiplexer
	reposRoot    string
	agentCommand []string
}

func NewWorkspaceService(mux ports.Multiplexer, reposRoot string, agentCommand []string) *WorkspaceService {
	return &WorkspaceService{mux: mux, reposRoot: reposRoot, agentCommand: agentCommand}
}

// Open resolves the repo's checkout under <reposRoot>/<owner>/<repo>, checks
// the multiplexer precondition, and opens a named window running the agent.
// A missing checkout fails before any subprocess is attempted. If a seed
// prompt is given (or orient is set) it is persisted to a uniquely named
// temp file the agent command references, sidestepping shell escaping and
// length limits.
func (s *WorkspaceService) Open(ctx context.Context, p OpenParams) (string, error) {
	path := filepath.Join(s.reposRoot, p.Repo.Owner, p.Repo.Name)
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s (expected %s)", domain.ErrCheckoutNotFound, p.Repo, path)
	}

	if !s.mux.InsideSession() {
		return "", domain.ErrNoMultiplexerHere
	}

	window := windowName(p.Repo, p.Context)
	command := append([]string{}, s.agentCommand...)
	if p.Model != "" {
		command = append(command, "--model", p.Model)
	}
	if p.Thinking != "" {
		command = append(command, "--thinking", p.Thinking)
	}

	promptPath := ""
	if p.Prompt != "" || p.Orient {
		var err error
		promptPath, err = writePromptFile(p.Prompt, p.Orient)
		if err != nil {
			return "", err
		}
		command = append(command, "--prompt-file", promptPath)
	}

	log.Debug("opening workspace window", "window", window, "dir", path)
	if err := s.mux.NewWindow(ctx, window, path, command); err != nil {
		return "", fmt.Errorf("open window %q: %w", window, err)
	}

	confirmation := fmt.Sprintf("opened window %q at %s", window, path)
	if promptPath != "" {
		confirmation += fmt.Sprintf(" (prompt: %s)", promptPath)
	}
	return confirmation, nil
}

func windowName(repo domain.RepoRef, context string) string {
	name := repo.Owner + "-" + repo.Name
	if context != "" {
		name += "-" + context
	}
	// tmux treats dots and colons specially in window targets.
	name = strings.ReplaceAll(name, ".", "-")
	name = strings.ReplaceAll(name, ":", "-")
	return strings.ReplaceAll(name, " ", "-")
}

func writePromptFile(prompt string, orient bool) (string, error) {
	var b strings.Builder
	if orient {
		b.WriteString(orientPreamble)
		if prompt != "" {
			b.WriteString("\n\n")
		}
	}
	b.WriteString(prompt)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("atelier-prompt-%s.md", uuid.NewString()))
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return "", fmt.Errorf("write prompt file: %w", err)
	}
	return path, nil
}
