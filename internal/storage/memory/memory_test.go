package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/storage"
)

func TestStorage_UploadAndGetURL(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	res, err := s.Upload(ctx, &storage.UploadInput{
		Key:         "products/abc/1.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("jpeg-bytes"),
	})

	require.NoError(t, err)
	assert.Equal(t, "products/abc/1.jpg", res.Key)
	assert.Equal(t, "https://cdn.example.com/images/products/abc/1.jpg", res.URL)

	url, err := s.GetURL(ctx, "products/abc/1.jpg")
	require.NoError(t, err)
	assert.Equal(t, res.URL, url)
}

func TestStorage_GetURL_Missing(t *testing.T) {
	s := New("https://cdn.example.com")

	url, err := s.GetURL(context.Background(), "nope")

	assert.Empty(t, url)
	assert.Error(t, err)
}

func TestStorage_Delete(t *testing.T) {
	s := New("https://cdn.example.com")
	ctx := context.Background()

	_, err := s.Upload(ctx, &storage.UploadInput{Key: "k", Data: strings.NewReader("x")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "k"))
	assert.Error(t, s.Delete(ctx, "k"))
}
