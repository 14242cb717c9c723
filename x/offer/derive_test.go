package offer

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenswap/swapper/swaptest"
)

func TestDeriveOfferAddress(t *testing.T) {
	maker := swaptest.NewAddress()

	addr, bump, err := DeriveOfferAddress(DefaultProgramID, maker, 1)
	require.NoError(t, err)

	again, againBump, err := DeriveOfferAddress(DefaultProgramID, maker, 1)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, bump, againBump)

	// same seeds as a deployed program uses
	id := make([]byte, 8)
	binary.LittleEndian.PutUint64(id, 1)
	want, wantBump, err := solana.FindProgramAddress([][]byte{[]byte("offer"), maker[:], id}, DefaultProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, addr)
	assert.Equal(t, wantBump, bump)

	other, _, err := DeriveOfferAddress(DefaultProgramID, maker, 2)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	other, _, err = DeriveOfferAddress(DefaultProgramID, swaptest.NewAddress(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)

	other, _, err = DeriveOfferAddress(swaptest.NewAddress(), maker, 1)
	require.NoError(t, err)
	assert.NotEqual(t, addr, other)
}

func TestOfferCondition(t *testing.T) {
	maker := swaptest.NewAddress()
	addr, bump, err := DeriveOfferAddress(DefaultProgramID, maker, 42)
	require.NoError(t, err)

	got, err := OfferCondition(DefaultProgramID, maker, 42, bump).Address()
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	// any other bump either fails or yields another address
	other, err := OfferCondition(DefaultProgramID, maker, 42, bump-1).Address()
	if err == nil {
		assert.NotEqual(t, addr, other)
	}
}
