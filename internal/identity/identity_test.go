package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	subject string
	err     error
	got     string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (string, error) {
	s.got = token
	return s.subject, s.err
}

func TestVerifyCredentialStripsBearer(t *testing.T) {
	v := &stubVerifier{subject: "op"}
	g := NewGate(v, "op")

	sub, err := g.VerifyCredential(context.Background(), "Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "op", sub)
	assert.Equal(t, "abc.def", v.got)

	_, err = g.VerifyCredential(context.Background(), "abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", v.got)
}

func TestVerifyCredentialErrors(t *testing.T) {
	g := NewGate(&stubVerifier{err: errors.New("network down")}, "op")

	_, err := g.VerifyCredential(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = g.VerifyCredential(context.Background(), "Bearer ")
	assert.ErrorIs(t, err, ErrMissingCredential)

	_, err = g.VerifyCredential(context.Background(), "Bearer x")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRequireOperator(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, NewGate(&stubVerifier{subject: "op"}, "op").RequireOperator(ctx, "Bearer t"))
	assert.ErrorIs(t, NewGate(&stubVerifier{subject: "someone"}, "op").RequireOperator(ctx, "Bearer t"), ErrForbidden)
	assert.ErrorIs(t, NewGate(&stubVerifier{subject: "op"}, "op").RequireOperator(ctx, ""), ErrMissingCredential)

	// no operator configured: nobody is privileged
	assert.False(t, NewGate(&stubVerifier{subject: ""}, "").IsOperator(ctx, "Bearer t"))
	assert.True(t, NewGate(&stubVerifier{subject: "op"}, "op").IsOperator(ctx, "Bearer t"))
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("secret")

	token, err := v.Sign("op-uid", time.Minute)
	require.NoError(t, err)

	sub, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "op-uid", sub)

	_, err = NewJWTVerifier("other").Verify(context.Background(), token)
	assert.Error(t, err)

	expired, _ := v.Sign("op-uid", -time.Minute)
	_, err = v.Verify(context.Background(), expired)
	assert.Error(t, err)
}
