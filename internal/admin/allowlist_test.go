package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin_CaseInsensitive(t *testing.T) {
	a := NewAllowlist([]string{"gibsoncollections1@gmail.com", "gibsoncollections2@gmail.com"})

	assert.True(t, a.IsAdmin("gibsoncollections1@gmail.com"))
	assert.True(t, a.IsAdmin("GibsonCollections1@Gmail.com"))
	assert.True(t, a.IsAdmin("GIBSONCOLLECTIONS2@GMAIL.COM"))
}

func TestIsAdmin_NonListedRejected(t *testing.T) {
	a := NewAllowlist([]string{"gibsoncollections1@gmail.com"})

	assert.False(t, a.IsAdmin("shopper@example.com"))
	assert.False(t, a.IsAdmin("gibsoncollections1@gmail.com.evil.com"))
}

func TestIsAdmin_EmptyEmail(t *testing.T) {
	a := NewAllowlist([]string{"gibsoncollections1@gmail.com"})
	assert.False(t, a.IsAdmin(""))
}

func TestNewAllowlist_TrimsAndSkipsBlanks(t *testing.T) {
	a := NewAllowlist([]string{" Owner@Example.com ", "", "  "})

	assert.True(t, a.IsAdmin("owner@example.com"))
	assert.False(t, a.IsAdmin(""))
}
