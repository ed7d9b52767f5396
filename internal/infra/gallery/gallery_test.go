package gallery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "firebase download url",
			url:  "https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/material%2Fm1%2Fphoto-1.jpg?alt=media&token=abc",
			want: "photo-1.jpg",
		},
		{
			name: "plain s3 url",
			url:  "https://cdn.example.com/material/m1/tent.webp",
			want: "tent.webp",
		},
		{
			name: "other material",
			url:  "https://cdn.example.com/material/m2/tent.webp",
			want: "",
		},
		{
			name: "no prefix",
			url:  "https://cdn.example.com/tent.webp",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractImageID(tc.url, "m1"))
		})
	}
}

func TestS3URL(t *testing.T) {
	s := NewS3(S3Config{
		Bucket:        "rental",
		Region:        "eu-west-3",
		PublicBaseURL: "https://cdn.example.com/",
	})

	u, err := s.URL(context.Background(), "material/m1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/material/m1/a.jpg", u)
	assert.Equal(t, "a.jpg", ExtractImageID(u, "m1"))

	def := NewS3(S3Config{Bucket: "rental", Region: "eu-west-3"})
	u, _ = def.URL(context.Background(), "material/m1/a.jpg")
	assert.Equal(t, "https://rental.s3.eu-west-3.amazonaws.com/material/m1/a.jpg", u)
}

func TestNoop(t *testing.T) {
	names, err := Noop{}.List(context.Background(), Prefix("m1"))
	require.NoError(t, err)
	assert.Empty(t, names)
}
