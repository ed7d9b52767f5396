// Package firebaseapp builds the Firebase Admin clients from configuration.
package firebaseapp

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/appcheck"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/BruksfildServices01/material-rental/internal/config"
)

type App struct {
	app    *firebase.App
	bucket string
}

func New(ctx context.Context, cfg config.FirebaseConfig) (*App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		DatabaseURL:   cfg.DatabaseURL,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}
	return &App{app: app, bucket: cfg.StorageBucket}, nil
}

func (a *App) Auth(ctx context.Context) (*auth.Client, error) {
	c, err := a.app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}
	return c, nil
}

func (a *App) AppCheck(ctx context.Context) (*appcheck.Client, error) {
	c, err := a.app.AppCheck(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: app check client: %w", err)
	}
	return c, nil
}

func (a *App) Database(ctx context.Context) (*db.Client, error) {
	c, err := a.app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: database client: %w", err)
	}
	return c, nil
}

// Bucket returns the default bucket and its name.
func (a *App) Bucket(ctx context.Context) (*gcs.BucketHandle, string, error) {
	c, err := a.app.Storage(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("firebase: storage client: %w", err)
	}
	b, err := c.DefaultBucket()
	if err != nil {
		return nil, "", fmt.Errorf("firebase: default bucket: %w", err)
	}
	return b, a.bucket, nil
}
