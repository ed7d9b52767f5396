// Package gallery lists the images uploaded for a material and resolves their
// public URLs.
package gallery

import (
	"context"
	"net/url"
	"strings"
)

// Lister lists object names under a prefix and resolves the public URL of
// one object.
type Lister interface {
	List(ctx context.Context, prefix string) ([]string, error)
	URL(ctx context.Context, name string) (string, error)
}

// Prefix is the storage folder holding the pictures of a material.
func Prefix(materialID string) string {
	return "material/" + materialID + "/"
}

// ExtractImageID returns the path segment following the material prefix,
// without the query string. Firebase download URLs escape the object path
// ("material%2F<id>%2F<file>?alt=media"), S3 URLs keep it plain.
func ExtractImageID(rawURL, materialID string) string {
	s := rawURL
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if unescaped, err := url.PathUnescape(s); err == nil {
		s = unescaped
	}

	marker := Prefix(materialID)
	i := strings.LastIndex(s, marker)
	if i < 0 {
		return ""
	}
	rest := s[i+len(marker):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

// Noop is used when no object storage is configured.
type Noop struct{}

func (Noop) List(context.Context, string) ([]string, error) { return nil, nil }

func (Noop) URL(_ context.Context, name string) (string, error) { return name, nil }
