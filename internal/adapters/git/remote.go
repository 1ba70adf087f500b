// Package git reads repository metadata by shelling out to the git binary.
package git

import (
	"context"
	"strings"

	"github.com/atelier-sh/atelier/internal/ports"
)

type RemoteReader struct {
	runner ports.Runner
}

var _ ports.RemoteReader = RemoteReader{}

func NewRemoteReader(runner ports.Runner) RemoteReader {
	return RemoteReader{runner: runner}
}

// OriginURL returns the origin remote URL of the checkout at dir, or ""
// when the directory has no usable origin (not a repo, no remote). Only
// hard runner failures propagate as errors.
func (r RemoteReader) OriginURL(ctx context.Context, dir string) (string, error) {
	result, err := r.runner.Run(ctx, ports.RunSpec{
		Name: "git",
		Args: []string{"remote", "get-url", "origin"},
		Dir:  dir,
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Output), nil
}
