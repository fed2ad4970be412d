package flash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickmart.dev/app/pkg/view"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	codec := NewCodec([]byte("secret"), "store_flash", false)

	v, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Added to cart!"})
	require.NoError(t, err)

	f, err := codec.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Added to cart!", f.Message)
}

func TestDecode_RejectsTampering(t *testing.T) {
	codec := NewCodec([]byte("secret"), "store_flash", false)

	v, err := codec.Encode(view.Flash{Kind: view.FlashError, Message: "nope"})
	require.NoError(t, err)

	parts := strings.SplitN(v, ".", 2)
	other := NewCodec([]byte("other"), "store_flash", false)
	forged, err := other.Encode(view.Flash{Kind: view.FlashError, Message: "forged"})
	require.NoError(t, err)
	forgedPayload := strings.SplitN(forged, ".", 2)[0]

	_, err = codec.Decode(forgedPayload + "." + parts[1])
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	codec := NewCodec([]byte("secret"), "store_flash", false)

	for _, v := range []string{"", "no-dot", "a.b.c", "!!!.???"} {
		_, err := codec.Decode(v)
		assert.Error(t, err, "value %q", v)
	}
}

func TestDecode_RejectsEmptyMessage(t *testing.T) {
	codec := NewCodec([]byte("secret"), "store_flash", false)

	v, err := codec.Encode(view.Flash{Kind: view.FlashInfo, Message: "   "})
	require.NoError(t, err)

	_, err = codec.Decode(v)
	assert.ErrorIs(t, err, ErrInvalid)
}
