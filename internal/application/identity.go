package application

import (
	"context"
	"fmt"

	"github.com/atelier-sh/atelier/internal/domain"
	"github.com/atelier-sh/atelier/internal/ports"
)

// IdentityService decides which GitHub account an invocation acts as, based
// on the owner of the repository's origin remote.
type IdentityService struct {
	remotes    ports.RemoteReader
	agentOwner string
	agent      domain.Account
	personal   domain.Account
	session    *Session
}

func NewIdentityService(remotes ports.RemoteReader, agentOwner string, agent, personal domain.Account, session *Session) *IdentityService {
	return &IdentityService{
		remotes:    remotes,
		agentOwner: agentOwner,
		agent:      agent,
		personal:   personal,
		session:    session,
	}
}

// AccountFor maps a repository owner to an account: the agent account iff
// the owner equals the designated agent owner, otherwise personal.
// An unknown owner also maps to personal.
func (s *IdentityService) AccountFor(owner string) domain.Account {
	if owner != "" && owner == s.agentOwner {
		return s.agent
	}
	return s.personal
}

// ResolveOwner reads the origin remote of the checkout at dir and extracts
// its owner, caching the answer on the session per directory. An empty
// owner is a valid (cached) answer, not an error.
func (s *IdentityService) ResolveOwner(ctx context.Context, dir string) (string, error) {
	if owner, ok := s.session.cachedOwner(dir); ok {
		return owner, nil
	}

	url, err := s.remotes.OriginURL(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("read origin remote: %w", err)
	}

	owner := domain.OwnerFromRemoteURL(url)
	s.session.cacheOwner(dir, owner)
	return owner, nil
}

// Resolve combines ResolveOwner and AccountFor for the checkout at dir.
func (s *IdentityService) Resolve(ctx context.Context, dir string) (domain.Account, error) {
	owner, err := s.ResolveOwner(ctx, dir)
	if err != nil {
		return domain.Account{}, err
	}
	return s.AccountFor(owner), nil
}
