package domain

import (
	"fmt"

	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

// PendingFile is a locally selected image awaiting upload.
type PendingFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ImageEntry is one position in an image set: either an already persisted
// public URL or a pending local file, never both.
type ImageEntry struct {
	URL  string       // set when persisted
	File *PendingFile // set when pending upload
}

// Persisted reports whether this entry is an already stored URL.
func (e ImageEntry) Persisted() bool {
	return e.File == nil
}

// PersistedImage returns an entry for an already stored public URL.
func PersistedImage(url string) ImageEntry {
	return ImageEntry{URL: url}
}

// PendingImage returns an entry for a file awaiting upload.
func PendingImage(f PendingFile) ImageEntry {
	return ImageEntry{File: &f}
}

// ImageSet is a bounded ordered sequence of image entries, at most
// MaxProductImages long. Persisted URLs and pending files share one sequence
// so removal and ordering work on a single list.
type ImageSet struct {
	entries []ImageEntry
}

// NewImageSet builds a set seeded with already persisted URLs.
func NewImageSet(urls []string) *ImageSet {
	entries := make([]ImageEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, PersistedImage(u))
	}
	return &ImageSet{entries: entries}
}

// Len returns the number of entries in the set.
func (s *ImageSet) Len() int {
	return len(s.entries)
}

// Entries returns the ordered entries.
func (s *ImageSet) Entries() []ImageEntry {
	return s.entries
}

// Add appends an entry. Adding beyond MaxProductImages is rejected and the
// set is left unchanged.
func (s *ImageSet) Add(e ImageEntry) error {
	if len(s.entries) >= MaxProductImages {
		return apperrors.InvalidInput(fmt.Sprintf("you can only upload a maximum of %d images", MaxProductImages))
	}
	s.entries = append(s.entries, e)
	return nil
}

// RemoveAt deletes the entry at position k in the combined sequence. No-op
// for an out-of-range index.
func (s *ImageSet) RemoveAt(k int) {
	if k < 0 || k >= len(s.entries) {
		return
	}
	s.entries = append(s.entries[:k], s.entries[k+1:]...)
}

// Uploader stores a pending file and returns its public URL.
type Uploader func(f PendingFile) (string, error)

// Resolve uploads each pending file in order through upload and returns the
// final ordered URL list, persisted URLs kept in their original relative
// positions. The first upload failure aborts the remainder; files already
// uploaded are not rolled back.
func (s *ImageSet) Resolve(upload Uploader) ([]string, error) {
	urls := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Persisted() {
			urls = append(urls, e.URL)
			continue
		}
		u, err := upload(*e.File)
		if err != nil {
			return nil, fmt.Errorf("upload image %q: %w", e.File.Name, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}
