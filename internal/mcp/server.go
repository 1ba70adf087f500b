// Package mcp exposes atelier operations as MCP tools for a coding-agent
// runtime over stdio. Domain failures are returned as structured outputs
// with an error field, never as protocol errors.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/atelier-sh/atelier/internal/application"
	"github.com/atelier-sh/atelier/internal/domain"
)

// Server wires the application services into an MCP stdio server. One
// server instance owns one session; tool calls are processed one at a time.
type Server struct {
	mcpServer  *mcp.Server
	executor   *application.GHExecutor
	concepts   *application.ConceptService
	workspaces *application.WorkspaceService
	workDir    string
	version    string
}

func NewServer(version, workDir string, executor *application.GHExecutor, concepts *application.ConceptService, workspaces *application.WorkspaceService) *Server {
	s := &Server{
		executor:   executor,
		concepts:   concepts,
		workspaces: workspaces,
		workDir:    workDir,
		version:    version,
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "atelier",
			Version: version,
		},
		nil,
	)

	s.registerTools()

	return s
}

// Run serves tool calls over stdio until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "github",
		Description: "Run an allow-listed gh command as the account matching the repository's remote owner. Returns merged output and exit code.",
	}, s.handleGitHub)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "load_concepts",
		Description: "Scan text for `cf:<name>` concept markers, load the referenced documents (following nested markers), and accumulate emphasis counts.",
	}, s.handleLoadConcepts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "concepts_status",
		Description: "Report every concept referenced this session with its emphasis count, plus identifiers that had no document.",
	}, s.handleConceptsStatus)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "bump_concept",
		Description: "Manually adjust a concept's emphasis count by a delta.",
	}, s.handleBumpConcept)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "unload_concept",
		Description: "Zero a concept's emphasis count and exclude it from future injection.",
	}, s.handleUnloadConcept)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "open_workspace",
		Description: "Open a new tmux window at a repo's local checkout and start the agent there, optionally seeded with a prompt.",
	}, s.handleOpenWorkspace)
}

// GitHubInput defines the input for the github tool.
type GitHubInput struct {
	Command string `json:"command" jsonschema:"The gh command to run without the leading 'gh'"`
	Dir     string `json:"dir,omitempty" jsonschema:"Checkout directory used to resolve the acting account (defaults to the server working directory)"`
}

// GitHubOutput defines the output for the github tool.
type GitHubOutput struct {
	Success  bool   `json:"success"`
	Account  string `json:"account,omitempty"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output,omitempty"`
	Declined bool   `json:"declined,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleGitHub(ctx context.Context, req *mcp.CallToolRequest, input GitHubInput) (*mcp.CallToolResult, GitHubOutput, error) {
	// The string boundary is the one place a command gets whitespace-split.
	argv := strings.Fields(input.Command)
	if len(argv) == 0 {
		return nil, GitHubOutput{Error: "command is required"}, nil
	}

	dir := input.Dir
	if dir == "" {
		dir = s.workDir
	}

	result, err := s.executor.Execute(ctx, argv, dir)
	if err != nil {
		out := GitHubOutput{Error: err.Error(), ExitCode: result.ExitCode, Output: result.Output}
		if errors.Is(err, domain.ErrRunCanceled) {
			out.Account = string(result.Account)
		}
		return nil, out, nil
	}

	return nil, GitHubOutput{
		Success:  result.Success,
		Account:  string(result.Account),
		ExitCode: result.ExitCode,
		Output:   result.Output,
		Declined: result.Declined,
	}, nil
}

// LoadConceptsInput defines the input for the load_concepts tool.
type LoadConceptsInput struct {
	Text string `json:"text" jsonschema:"Text to scan for concept markers"`
}

// ConceptCount pairs a concept name with its session-cumulative count.
type ConceptCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LoadConceptsOutput defines the output for the load_concepts tool.
type LoadConceptsOutput struct {
	Success bool           `json:"success"`
	Loaded  []string       `json:"loaded"`
	Counts  []ConceptCount `json:"counts"`
	Missing []string       `json:"missing,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (s *Server) handleLoadConcepts(ctx context.Context, req *mcp.CallToolRequest, input LoadConceptsInput) (*mcp.CallToolResult, LoadConceptsOutput, error) {
	report, err := s.concepts.LoadFromText(ctx, input.Text)
	if err != nil {
		return nil, LoadConceptsOutput{Error: err.Error()}, nil
	}

	out := LoadConceptsOutput{Success: true}
	for name := range report.Loaded {
		out.Loaded = append(out.Loaded, string(name))
	}
	for name, count := range report.Counts {
		out.Counts = append(out.Counts, ConceptCount{Name: string(name), Count: count})
	}
	for _, name := range report.Missing {
		out.Missing = append(out.Missing, string(name))
	}
	return nil, out, nil
}

// ConceptsStatusInput defines the input for the concepts_status tool.
type ConceptsStatusInput struct{}

// ConceptsStatusOutput defines the output for the concepts_status tool.
type ConceptsStatusOutput struct {
	Concepts []ConceptCount `json:"concepts"`
	Missing  []string       `json:"missing,omitempty"`
}

func (s *Server) handleConceptsStatus(ctx context.Context, req *mcp.CallToolRequest, input ConceptsStatusInput) (*mcp.CallToolResult, ConceptsStatusOutput, error) {
	concepts, missing := s.concepts.Status()

	out := ConceptsStatusOutput{}
	for _, c := range concepts {
		out.Concepts = append(out.Concepts, ConceptCount{Name: string(c.Name), Count: c.Count})
	}
	for _, name := range missing {
		out.Missing = append(out.Missing, string(name))
	}
	return nil, out, nil
}

// BumpConceptInput defines the input for the bump_concept tool.
type BumpConceptInput struct {
	Name  string `json:"name" jsonschema:"Concept identifier"`
	Delta int    `json:"delta,omitempty" jsonschema:"Count adjustment (defaults to 1)"`
}

// BumpConceptOutput defines the output for the bump_concept tool.
type BumpConceptOutput struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleBumpConcept(ctx context.Context, req *mcp.CallToolRequest, input BumpConceptInput) (*mcp.CallToolResult, BumpConceptOutput, error) {
	if input.Name == "" {
		return nil, BumpConceptOutput{Error: "name is required"}, nil
	}

	delta := input.Delta
	if delta == 0 {
		delta = 1
	}

	count := s.concepts.Bump(domain.ConceptName(input.Name), delta)
	return nil, BumpConceptOutput{Success: true, Name: input.Name, Count: count}, nil
}

// UnloadConceptInput defines the input for the unload_concept tool.
type UnloadConceptInput struct {
	Name string `json:"name" jsonschema:"Concept identifier"`
}

// UnloadConceptOutput defines the output for the unload_concept tool.
type UnloadConceptOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleUnloadConcept(ctx context.Context, req *mcp.CallToolRequest, input UnloadConceptInput) (*mcp.CallToolResult, UnloadConceptOutput, error) {
	if input.Name == "" {
		return nil, UnloadConceptOutput{Error: "name is required"}, nil
	}

	s.concepts.Unload(domain.ConceptName(input.Name))
	return nil, UnloadConceptOutput{Success: true}, nil
}

// OpenWorkspaceInput defines the input for the open_workspace tool.
type OpenWorkspaceInput struct {
	Repo     string `json:"repo" jsonschema:"Repository in owner/repo form"`
	Model    string `json:"model,omitempty" jsonschema:"Model for the agent session"`
	Thinking string `json:"thinking,omitempty" jsonschema:"Thinking configuration for the agent session"`
	Context  string `json:"context,omitempty" jsonschema:"Optional label appended to the window name"`
	Prompt   string `json:"prompt,omitempty" jsonschema:"Optional seed prompt for the new session"`
	Orient   bool   `json:"orient,omitempty" jsonschema:"Prepend an orientation preamble to the seed prompt"`
}

// OpenWorkspaceOutput defines the output for the open_workspace tool.
type OpenWorkspaceOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleOpenWorkspace(ctx context.Context, req *mcp.CallToolRequest, input OpenWorkspaceInput) (*mcp.CallToolResult, OpenWorkspaceOutput, error) {
	repo, err := domain.ParseRepoRef(input.Repo)
	if err != nil {
		return nil, OpenWorkspaceOutput{Error: err.Error()}, nil
	}

	message, err := s.workspaces.Open(ctx, application.OpenParams{
		Repo:     repo,
		Model:    input.Model,
		Thinking: input.Thinking,
		Context:  input.Context,
		Prompt:   input.Prompt,
		Orient:   input.Orient,
	})
	if err != nil {
		return nil, OpenWorkspaceOutput{Error: fmt.Sprintf("open workspace: %v", err)}, nil
	}

	return nil, OpenWorkspaceOutput{Success: true, Message: message}, nil
}
