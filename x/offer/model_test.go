package offer

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/swaptest"
)

func TestOfferLayout(t *testing.T) {
	o := Offer{
		ID:            0x0102,
		Maker:         swaptest.NewAddress(),
		TokenMintA:    swaptest.NewAddress(),
		TokenMintB:    swaptest.NewAddress(),
		WantedAmountB: 50,
		Bump:          254,
	}
	raw, err := o.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, 121)

	tag := sha256.Sum256([]byte("account:Offer"))
	assert.Equal(t, tag[:8], raw[:8])
	assert.Equal(t, []byte{2, 1, 0, 0, 0, 0, 0, 0}, raw[8:16])
	assert.Equal(t, o.Maker[:], raw[16:48])
	assert.Equal(t, o.TokenMintA[:], raw[48:80])
	assert.Equal(t, o.TokenMintB[:], raw[80:112])
	assert.Equal(t, []byte{50, 0, 0, 0, 0, 0, 0, 0}, raw[112:120])
	assert.Equal(t, byte(254), raw[120])

	var got Offer
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, o, got)

	corrupted := append([]byte{}, raw...)
	corrupted[0] ^= 0xff
	assert.True(t, errors.ErrInvalidInput.Is(got.Unmarshal(corrupted)))
	assert.True(t, errors.ErrInvalidInput.Is(got.Unmarshal(raw[:120])))
	assert.True(t, bytes.Equal(raw, mustMarshal(t, &got)))
}

func mustMarshal(t *testing.T, o *Offer) []byte {
	t.Helper()
	raw, err := o.Marshal()
	require.NoError(t, err)
	return raw
}

func TestValidateRelationships(t *testing.T) {
	o := &Offer{
		Maker:         swaptest.NewAddress(),
		TokenMintA:    swaptest.NewAddress(),
		TokenMintB:    swaptest.NewAddress(),
		WantedAmountB: 1,
	}
	require.NoError(t, o.Validate())
	require.NoError(t, Validate(o, o.Maker, o.TokenMintA, o.TokenMintB))

	other := swaptest.NewAddress()
	assert.True(t, errors.ErrMismatch.Is(Validate(o, other, o.TokenMintA, o.TokenMintB)))
	assert.True(t, errors.ErrMismatch.Is(Validate(o, o.Maker, other, o.TokenMintB)))
	assert.True(t, errors.ErrMismatch.Is(Validate(o, o.Maker, o.TokenMintA, other)))
	// swapped mints are not the same offer
	assert.True(t, errors.ErrMismatch.Is(Validate(o, o.Maker, o.TokenMintB, o.TokenMintA)))
}
