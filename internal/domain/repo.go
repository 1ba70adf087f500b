package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// RepoRef is an owner/name pair identifying a GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

var repoRefPattern = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

func ParseRepoRef(raw string) (RepoRef, error) {
	m := repoRefPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrMalformedRepo, raw)
	}
	return RepoRef{Owner: m[1], Name: m[2]}, nil
}

var (
	sshRemotePattern   = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	httpsRemotePattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// OwnerFromRemoteURL extracts the repository owner from a GitHub remote URL
// in SSH (git@github.com:owner/repo) or HTTPS (https://github.com/owner/repo)
// form. It returns "" for non-GitHub hosts and anything it cannot parse.
func OwnerFromRemoteURL(url string) string {
	url = strings.TrimSpace(url)
	if m := sshRemotePattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := httpsRemotePattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
