package cidutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hex(t *testing.T) {
	data := []byte(`{"name":"schema"}`)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), SHA256Hex(data))
}

func TestCIDv1RawSHA256_Stable(t *testing.T) {
	a := CIDv1RawSHA256([]byte("hello"))
	b := CIDv1RawSHA256([]byte("hello"))
	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, CIDv1RawSHA256([]byte("hello!")))

	c, err := cid.Decode(a)
	require.NoError(t, err)
	assert.Equal(t, uint64(cid.Raw), c.Type())
}

func TestMatchChecksum(t *testing.T) {
	data := []byte("payload")
	sum := SHA256Hex(data)

	checked, ok := MatchChecksum(data, sum)
	assert.True(t, checked)
	assert.True(t, ok)

	checked, ok = MatchChecksum(data, strings.ToUpper(sum))
	assert.True(t, checked)
	assert.True(t, ok)

	checked, ok = MatchChecksum([]byte("other"), sum)
	assert.True(t, checked)
	assert.False(t, ok)

	checked, _ = MatchChecksum(data, "not-a-digest")
	assert.False(t, checked)
	checked, _ = MatchChecksum(data, "")
	assert.False(t, checked)
}
