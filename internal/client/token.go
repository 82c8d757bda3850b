// Package client obtains Google identity tokens and calls the deployed
// Hello World service with them.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultTokenCommand is the credential tool used when none is configured.
const DefaultTokenCommand = "gcloud"

// ErrNoToken is returned when no identity token could be obtained.
var ErrNoToken = errors.New("no identity token")

// TokenSource issues identity tokens through the gcloud CLI.
type TokenSource struct {
	command string
	runner  runner
	logger  *zap.Logger
}

// NewTokenSource returns a TokenSource that runs command (usually "gcloud").
func NewTokenSource(command string, logger *zap.Logger) *TokenSource {
	if command == "" {
		command = DefaultTokenCommand
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSource{
		command: command,
		runner:  execRunner{},
		logger:  logger,
	}
}

// Token returns an identity token scoped to audience. Any failure of the
// credential tool, including empty output, yields an error wrapping ErrNoToken.
func (s *TokenSource) Token(ctx context.Context, audience string) (string, error) {
	var stdout, stderr bytes.Buffer
	args := []string{"auth", "print-identity-token", "--audiences=" + audience}
	if err := s.runner.Run(ctx, s.command, args, Stdout(&stdout), Stderr(&stderr)); err != nil {
		s.logger.Warn("identity token command failed",
			zap.String("command", s.command),
			zap.String("audience", audience),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: run %s: %w", ErrNoToken, s.command, err)
	}

	token := strings.TrimSpace(stdout.String())
	if token == "" {
		s.logger.Warn("identity token command printed nothing", zap.String("command", s.command))
		return "", fmt.Errorf("%w: %s printed an empty token", ErrNoToken, s.command)
	}
	return token, nil
}
