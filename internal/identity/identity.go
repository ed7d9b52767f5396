// Package identity verifies bearer credentials and decides whether the caller
// is the operator.
package identity

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrMissingCredential = errors.New("identity: missing credential")
	ErrInvalidCredential = errors.New("identity: invalid credential")
	ErrForbidden         = errors.New("identity: forbidden")
)

// Verifier checks a raw token and returns its subject.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AppChecker verifies an edge integrity token.
type AppChecker interface {
	VerifyAppCheck(ctx context.Context, token string) error
}

type Gate struct {
	verifier    Verifier
	operatorUID string
}

func NewGate(verifier Verifier, operatorUID string) *Gate {
	return &Gate{verifier: verifier, operatorUID: operatorUID}
}

// VerifyCredential accepts "Bearer <token>" or a bare token. Any provider
// failure is reported as ErrInvalidCredential.
func (g *Gate) VerifyCredential(ctx context.Context, header string) (string, error) {
	token := bearerToken(header)
	if token == "" {
		return "", ErrMissingCredential
	}

	subject, err := g.verifier.Verify(ctx, token)
	if err != nil || subject == "" {
		return "", ErrInvalidCredential
	}
	return subject, nil
}

func (g *Gate) RequireOperator(ctx context.Context, header string) error {
	_, err := g.Operator(ctx, header)
	return err
}

// Operator is RequireOperator returning the verified subject.
func (g *Gate) Operator(ctx context.Context, header string) (string, error) {
	subject, err := g.VerifyCredential(ctx, header)
	if err != nil {
		return "", err
	}
	if g.operatorUID == "" || subject != g.operatorUID {
		return "", ErrForbidden
	}
	return subject, nil
}

func (g *Gate) IsOperator(ctx context.Context, header string) bool {
	return g.RequireOperator(ctx, header) == nil
}

func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	const prefix = "Bearer"
	if len(token) >= len(prefix) && strings.EqualFold(token[:len(prefix)], prefix) {
		rest := token[len(prefix):]
		if rest == "" || rest[0] == ' ' {
			return strings.TrimSpace(rest)
		}
	}
	return token
}
