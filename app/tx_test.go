package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/store"
	"github.com/tokenswap/swapper/swaptest"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/sigs"
)

func randomFulfill() *offer.FulfillOfferMsg {
	return &offer.FulfillOfferMsg{
		Taker:         swaptest.NewAddress(),
		Maker:         swaptest.NewAddress(),
		TokenMintA:    swaptest.NewAddress(),
		TokenMintB:    swaptest.NewAddress(),
		TakerAccountA: swaptest.NewAddress(),
		TakerAccountB: swaptest.NewAddress(),
		MakerAccountB: swaptest.NewAddress(),
		Offer:         swaptest.NewAddress(),
		Vault:         swaptest.NewAddress(),
	}
}

func TestTxSignAndDecode(t *testing.T) {
	maker, other := swaptest.NewKey(), swaptest.NewKey()
	msg := &offer.CreateOfferMsg{
		ID:             9,
		OfferedAmountA: 100,
		WantedAmountB:  50,
		Maker:          maker.PublicKey(),
		TokenMintA:     swaptest.NewAddress(),
		TokenMintB:     swaptest.NewAddress(),
		MakerAccountA:  swaptest.NewAddress(),
		Vault:          swaptest.NewAddress(),
		Offer:          swaptest.NewAddress(),
	}
	tx := NewTx(msg)
	require.NoError(t, tx.Sign(maker, "swap-chain", 0))
	require.NoError(t, tx.Sign(other, "swap-chain", 3))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	msgRaw, err := msg.Marshal()
	require.NoError(t, err)
	assert.Equal(t, 1+2*(32+8+64)+len(msgRaw), len(raw))
	assert.Equal(t, byte(2), raw[0])

	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	assert.Equal(t, int64(3), decoded.(*Tx).Signatures[1].Sequence)

	db := store.MemStore()
	_, err = sigs.VerifyTxSignatures(db, decoded.(*Tx), "swap-chain")
	assert.True(t, sigs.ErrInvalidSequence.Is(err), "got %+v", err)

	// other is at sequence 3 once it signed three other transactions
	db = store.MemStore()
	for seq := int64(0); seq < 3; seq++ {
		prior := NewTx(randomFulfill())
		require.NoError(t, prior.Sign(other, "swap-chain", seq))
		_, err := sigs.VerifyTxSignatures(db, prior, "swap-chain")
		require.NoError(t, err)
	}
	signers, err := sigs.VerifyTxSignatures(db, decoded.(*Tx), "swap-chain")
	require.NoError(t, err)
	assert.Equal(t, []swapper.Address{maker.PublicKey(), other.PublicKey()}, signers)
}

func TestTxDecodesEveryInstruction(t *testing.T) {
	msg := randomFulfill()
	raw, err := NewTx(msg).Marshal()
	require.NoError(t, err)

	tx, err := TxDecoder(raw)
	require.NoError(t, err)
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	assert.Empty(t, tx.(*Tx).GetSignatures())
}

func TestTxDecodeErrors(t *testing.T) {
	valid, err := NewTx(randomFulfill()).Marshal()
	require.NoError(t, err)

	unknown := append([]byte{0}, make([]byte, 20)...)

	cases := map[string][]byte{
		"empty":                 nil,
		"missing message":       {0},
		"truncated signature":   {1, 1, 2, 3},
		"truncated sequence":    append(append([]byte{1}, make([]byte, 32)...), 1, 2),
		"unknown discriminator": unknown,
		"truncated message":     valid[:len(valid)-1],
		"trailing bytes":        append(append([]byte{}, valid...), 7),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := TxDecoder(raw)
			assert.True(t, errors.ErrInvalidInput.Is(err), "got %+v", err)
		})
	}
}

func TestTxWithoutMsg(t *testing.T) {
	tx := &Tx{}
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = tx.Marshal()
	assert.True(t, errors.ErrInvalidInput.Is(err))
	assert.Equal(t, "(missing)", swapper.GetPath(tx))
}
