package application

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/atelier-sh/atelier/internal/domain"
)

// Decision is the gate's verdict on an allowed command. Confirm marks
// invocations that must pass a user confirmation before executing.
type Decision struct {
	Cmd     domain.GHCommand
	Confirm bool
}

type exactRule struct {
	command     string
	subcommands []string
}

type apiRule struct {
	raw     string
	pattern glob.Glob
	methods []string
	// confirm lists the methods that additionally require confirmation.
	confirm []string
}

// Gate is a closed-world allow-list over gh invocations: default-deny,
// explicit enumeration. The rule table is data; checkCommand is the single
// dispatch point.
type Gate struct {
	exact []exactRule
	api   []apiRule
}

// NewGate builds the static allow-list. API path patterns are compiled with
// '/' as the glob separator, so '*' matches exactly one path segment and
// segment counts must line up.
func NewGate() *Gate {
	return &Gate{
		exact: []exactRule{
			{command: "pr", subcommands: []string{"checks", "diff", "list", "status", "view"}},
			{command: "issue", subcommands: []string{"list", "view"}},
			{command: "repo", subcommands: []string{"view"}},
			{command: "search", subcommands: []string{"issues", "prs"}},
		},
		api: []apiRule{
			newAPIRule("repos/*/*/pulls/*/comments", []string{"GET"}, nil),
			newAPIRule("repos/*/*/pulls/comments/*", []string{"GET", "PATCH"}, []string{"PATCH"}),
			newAPIRule("repos/*/*/pulls/*/comments/*/replies", []string{"POST"}, []string{"POST"}),
			newAPIRule("repos/*/*/pulls/*/reviews", []string{"GET"}, nil),
			newAPIRule("repos/*/*/issues/*/comments", []string{"GET", "POST"}, []string{"POST"}),
			newAPIRule("repos/*/*/issues/comments/*", []string{"GET", "PATCH"}, []string{"PATCH"}),
		},
	}
}

func newAPIRule(raw string, methods, confirm []string) apiRule {
	return apiRule{
		raw:     raw,
		pattern: glob.MustCompile(raw, '/'),
		methods: methods,
		confirm: confirm,
	}
}

// Check validates a gh argv against the allow-list. Denials wrap
// domain.ErrCommandDenied with a reason naming the nearest allowed set.
func (g *Gate) Check(argv []string) (Decision, error) {
	cmd, err := domain.ParseGHCommand(argv)
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %s", domain.ErrCommandDenied, err)
	}
	return g.checkCommand(cmd)
}

func (g *Gate) checkCommand(cmd domain.GHCommand) (Decision, error) {
	if cmd.IsAPI() {
		return g.checkAPI(cmd)
	}

	for _, rule := range g.exact {
		if rule.command != cmd.Command {
			continue
		}
		if slices.Contains(rule.subcommands, cmd.Subcommand) {
			return Decision{Cmd: cmd}, nil
		}
		return Decision{}, fmt.Errorf("%w: %q; allowed %s subcommands: %s",
			domain.ErrCommandDenied,
			strings.TrimSpace(cmd.Command+" "+cmd.Subcommand),
			cmd.Command,
			strings.Join(rule.subcommands, ", "))
	}

	return Decision{}, fmt.Errorf("%w: %q; allowed commands: %s",
		domain.ErrCommandDenied, cmd.Command, strings.Join(g.allowedCommands(), ", "))
}

func (g *Gate) checkAPI(cmd domain.GHCommand) (Decision, error) {
	for _, rule := range g.api {
		if !rule.pattern.Match(cmd.Endpoint) {
			continue
		}
		if !slices.Contains(rule.methods, cmd.Method) {
			return Decision{}, fmt.Errorf("%w: method %s on %q; allowed methods: %s",
				domain.ErrCommandDenied, cmd.Method, cmd.Endpoint, strings.Join(rule.methods, ", "))
		}
		return Decision{Cmd: cmd, Confirm: slices.Contains(rule.confirm, cmd.Method)}, nil
	}

	endpoints := make([]string, 0, len(g.api))
	for _, rule := range g.api {
		endpoints = append(endpoints, rule.raw)
	}
	return Decision{}, fmt.Errorf("%w: endpoint %q; allowed endpoints: %s",
		domain.ErrCommandDenied, cmd.Endpoint, strings.Join(endpoints, ", "))
}

func (g *Gate) allowedCommands() []string {
	commands := make([]string, 0, len(g.exact)+1)
	for _, rule := range g.exact {
		commands = append(commands, rule.command)
	}
	commands = append(commands, "api")
	sort.Strings(commands)
	return commands
}
