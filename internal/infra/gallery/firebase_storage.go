package gallery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

const downloadTokensKey = "firebaseStorageDownloadTokens"

// FirebaseStorage lists a Firebase Storage bucket and builds the same
// token-bearing download URLs the Firebase client SDKs return.
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseStorage(bucket *gcs.BucketHandle, bucketName string) *FirebaseStorage {
	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}
}

func (f *FirebaseStorage) List(ctx context.Context, prefix string) ([]string, error) {
	it := f.bucket.Objects(ctx, &gcs.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		// folder placeholders
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (f *FirebaseStorage) URL(ctx context.Context, name string) (string, error) {
	attrs, err := f.bucket.Object(name).Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("attrs %s: %w", name, err)
	}

	u := fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		f.bucketName,
		url.PathEscape(name),
	)
	if token := firstToken(attrs.Metadata[downloadTokensKey]); token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u, nil
}

func firstToken(tokens string) string {
	if i := strings.IndexByte(tokens, ','); i >= 0 {
		return tokens[:i]
	}
	return tokens
}
