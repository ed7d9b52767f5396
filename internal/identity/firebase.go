package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/appcheck"
	"firebase.google.com/go/v4/auth"
)

type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	t, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return t.UID, nil
}

type FirebaseAppChecker struct {
	client *appcheck.Client
}

func NewFirebaseAppChecker(client *appcheck.Client) *FirebaseAppChecker {
	return &FirebaseAppChecker{client: client}
}

// VerifyAppCheck does not take the context: the SDK fetches its key set
// with its own client.
func (a *FirebaseAppChecker) VerifyAppCheck(_ context.Context, token string) error {
	if _, err := a.client.VerifyToken(token); err != nil {
		return fmt.Errorf("verify app check token: %w", err)
	}
	return nil
}
