package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calyptra/stark-wallet/internal/util"
)

func TestIsHexString(t *testing.T) {
	assert.True(t, util.IsHexString("0xdeadbeef"))
	assert.True(t, util.IsHexString("0XDEADBEEF"))
	assert.True(t, util.IsHexString("0x00"))

	assert.False(t, util.IsHexString("deadbeef"))
	assert.False(t, util.IsHexString("0x"))
	assert.False(t, util.IsHexString("0xabc"))   // odd length
	assert.False(t, util.IsHexString("0xzzzz"))  // not hex
	assert.False(t, util.IsHexString("hello"))   // plain text
	assert.False(t, util.IsHexString("0x68i"))   // mixed
}

func TestDecodeHexString(t *testing.T) {
	b, err := util.DecodeHexString("0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	b, err = util.DecodeHexString("deadbeef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	_, err = util.DecodeHexString("0xzz")
	require.Error(t, err)
}
