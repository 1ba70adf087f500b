package domain

import (
	"errors"
	"fmt"
	"strings"
)

// GHCommand is a parsed gh invocation: the raw argv plus the pieces the
// allow-list dispatches on.
type GHCommand struct {
	Argv       []string
	Command    string
	Subcommand string

	// Populated only when Command == "api".
	Endpoint string
	Method   string
}

func (c GHCommand) IsAPI() bool {
	return c.Command == "api"
}

// apiValueFlags are the gh api flags that consume the next token as their
// value. Values of these flags must never be mistaken for the endpoint.
// Unknown flags are assumed to take no value, so a smuggled value after one
// surfaces as a second positional token and is rejected.
var apiValueFlags = map[string]struct{}{
	"-X": {}, "--method": {},
	"-f": {}, "--raw-field": {},
	"-F": {}, "--field": {},
	"-H": {}, "--header": {},
	"-q": {}, "--jq": {},
	"-t": {}, "--template": {},
	"--input":    {},
	"--hostname": {},
	"--cache":    {},
	"-p": {}, "--preview": {},
}

// ParseGHCommand parses an already-split argv intended for the gh CLI.
// Tokens are taken as-is; they are never re-split, so arguments containing
// whitespace survive intact. API invocations additionally carry the
// endpoint path (stripped of a leading slash) and the HTTP method from
// -X/--method, defaulting to GET. An api invocation must have exactly one
// positional token, the endpoint.
func ParseGHCommand(argv []string) (GHCommand, error) {
	fields := make([]string, 0, len(argv))
	for _, arg := range argv {
		if strings.TrimSpace(arg) != "" {
			fields = append(fields, arg)
		}
	}
	if len(fields) > 0 && fields[0] == "gh" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return GHCommand{}, errors.New("empty command")
	}

	cmd := GHCommand{Argv: fields, Command: fields[0]}
	if len(fields) > 1 && !strings.HasPrefix(fields[1], "-") {
		cmd.Subcommand = fields[1]
	}

	if cmd.Command != "api" {
		return cmd, nil
	}

	cmd.Subcommand = ""
	cmd.Method = "GET"
	for i := 1; i < len(fields); i++ {
		arg := fields[i]
		switch {
		case arg == "-X" || arg == "--method":
			if i+1 < len(fields) {
				cmd.Method = strings.ToUpper(fields[i+1])
				i++
			}
		case strings.HasPrefix(arg, "--method="):
			cmd.Method = strings.ToUpper(strings.TrimPrefix(arg, "--method="))
		case strings.HasPrefix(arg, "-"):
			if _, takesValue := apiValueFlags[arg]; takesValue {
				i++
			}
			// --flag=value forms are single tokens and need no skipping.
		case cmd.Endpoint == "":
			cmd.Endpoint = strings.TrimPrefix(arg, "/")
		default:
			return GHCommand{}, fmt.Errorf("unexpected argument %q after endpoint %q", arg, cmd.Endpoint)
		}
	}
	if cmd.Endpoint == "" {
		return GHCommand{}, errors.New("api command is missing an endpoint")
	}

	return cmd, nil
}
