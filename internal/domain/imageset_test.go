package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSet_AddUpToLimit(t *testing.T) {
	s := NewImageSet(nil)
	for i := 0; i < MaxProductImages; i++ {
		require.NoError(t, s.Add(PersistedImage(fmt.Sprintf("https://img/%d", i))))
	}
	assert.Equal(t, MaxProductImages, s.Len())
}

func TestImageSet_SixthAdditionRejected(t *testing.T) {
	s := NewImageSet([]string{"a", "b", "c"})
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "d.jpg"})))
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "e.jpg"})))

	err := s.Add(PendingImage(PendingFile{Name: "f.jpg"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum of 5 images")
	// Set unchanged at 5.
	assert.Equal(t, 5, s.Len())
}

func TestImageSet_RemoveAtCombinedIndex(t *testing.T) {
	s := NewImageSet([]string{"u1", "u2"})
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "new.jpg"})))

	// Index 2 falls past the persisted URLs, into the pending entries.
	s.RemoveAt(2)

	require.Equal(t, 2, s.Len())
	for _, e := range s.Entries() {
		assert.True(t, e.Persisted())
	}
}

func TestImageSet_RemoveAtOutOfRangeIsNoop(t *testing.T) {
	s := NewImageSet([]string{"u1"})
	s.RemoveAt(-1)
	s.RemoveAt(5)
	assert.Equal(t, 1, s.Len())
}

func TestImageSet_ResolvePreservesOrder(t *testing.T) {
	s := NewImageSet([]string{"https://img/existing1"})
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "a.jpg"})))
	require.NoError(t, s.Add(PersistedImage("https://img/existing2")))
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "b.jpg"})))

	urls, err := s.Resolve(func(f PendingFile) (string, error) {
		return "https://img/uploaded/" + f.Name, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://img/existing1",
		"https://img/uploaded/a.jpg",
		"https://img/existing2",
		"https://img/uploaded/b.jpg",
	}, urls)
}

func TestImageSet_ResolveAbortsOnFailure(t *testing.T) {
	s := NewImageSet(nil)
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "a.jpg"})))
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "b.jpg"})))
	require.NoError(t, s.Add(PendingImage(PendingFile{Name: "c.jpg"})))

	var uploaded []string
	urls, err := s.Resolve(func(f PendingFile) (string, error) {
		if f.Name == "b.jpg" {
			return "", errors.New("bucket unavailable")
		}
		uploaded = append(uploaded, f.Name)
		return "https://img/" + f.Name, nil
	})

	assert.Nil(t, urls)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.jpg")
	// The first file was already uploaded before the failure; the third
	// was never attempted.
	assert.Equal(t, []string{"a.jpg"}, uploaded)
}
