package users

import (
	"os"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	r := Static{1000: "alice", 1001: "bob"}
	assert.Equal(t, "alice", r.Name(1000))
	assert.Equal(t, "bob", r.Name(1001))
	assert.Equal(t, "uid:4242", r.Name(4242))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "uid:0", Fallback(0))
	assert.Equal(t, "uid:65534", Fallback(65534))
}

func TestPasswd_Self(t *testing.T) {
	me, err := user.Current()
	require.NoError(t, err)

	r := NewPasswd()
	got := r.Name(uint32(os.Getuid()))
	assert.Equal(t, me.Username, got)

	// Second lookup hits the cache and must agree.
	assert.Equal(t, got, r.Name(uint32(os.Getuid())))
}

func TestPasswd_UnknownUID(t *testing.T) {
	r := NewPasswd()
	// A uid this large is vanishingly unlikely to exist in any passwd.
	assert.Equal(t, "uid:4294901760", r.Name(4294901760))
}
