package sigs

import (
	"context"
	"testing"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/store"
	"github.com/tokenswap/swapper/swaptest"
	"github.com/tokenswap/swapper/swaptest/assert"
)

// signedTx is a minimal transaction carrying signatures
type signedTx struct {
	swaptest.Tx
	signBytes []byte
	sigs      []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.signBytes, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func TestSignatures(t *testing.T) {
	const chainID = "test-chain"
	alice, bob := swaptest.NewKey(), swaptest.NewKey()

	tx := &signedTx{signBytes: []byte("transfer 100 tokens")}
	aliceSig, err := SignTx(alice, tx, chainID, 0)
	assert.Nil(t, err)
	bobSig, err := SignTx(bob, tx, chainID, 0)
	assert.Nil(t, err)
	otherChain, err := SignTx(bob, tx, "other-chain", 0)
	assert.Nil(t, err)
	aheadSig, err := SignTx(bob, tx, chainID, 1)
	assert.Nil(t, err)
	forgedSeq := *bobSig
	forgedSeq.Sequence = 1

	cases := map[string]struct {
		sigs    []*StdSignature
		wantErr *errors.Error
		want    []swapper.Address
	}{
		"no signatures": {
			want: []swapper.Address{},
		},
		"single": {
			sigs: []*StdSignature{aliceSig},
			want: []swapper.Address{alice.PublicKey()},
		},
		"two in order": {
			sigs: []*StdSignature{bobSig, aliceSig},
			want: []swapper.Address{bob.PublicKey(), alice.PublicKey()},
		},
		"signed for another chain": {
			sigs:    []*StdSignature{aliceSig, otherChain},
			wantErr: errors.ErrUnauthorized,
		},
		"public key swapped": {
			sigs:    []*StdSignature{{Pubkey: bob.PublicKey(), Signature: aliceSig.Signature}},
			wantErr: errors.ErrUnauthorized,
		},
		"empty signature": {
			sigs:    []*StdSignature{{Pubkey: bob.PublicKey()}},
			wantErr: errors.ErrUnauthorized,
		},
		"sequence ahead of the signer": {
			sigs:    []*StdSignature{aheadSig},
			wantErr: ErrInvalidSequence,
		},
		"sequence not covered by the signature": {
			sigs:    []*StdSignature{&forgedSeq},
			wantErr: errors.ErrUnauthorized,
		},
		"negative sequence": {
			sigs:    []*StdSignature{{Pubkey: bob.PublicKey(), Sequence: -1, Signature: bobSig.Signature}},
			wantErr: ErrInvalidSequence,
		},
		"same signer twice": {
			sigs:    []*StdSignature{bobSig, bobSig},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			tx := &signedTx{signBytes: tx.signBytes, sigs: tc.sigs}
			signers, err := VerifyTxSignatures(store.MemStore(), tx, chainID)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, signers)
		})
	}
}

func TestBuildSignBytes(t *testing.T) {
	_, err := BuildSignBytes([]byte("data"), "x", 0)
	assert.IsErr(t, errors.ErrInvalidInput, err)
	_, err = BuildSignBytes([]byte("data"), "chain-a", -1)
	assert.IsErr(t, ErrInvalidSequence, err)

	a, err := BuildSignBytes([]byte("data"), "chain-a", 0)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("data"), "chain-b", 0)
	assert.Nil(t, err)
	c, err := BuildSignBytes([]byte("data"), "chain-a", 1)
	assert.Nil(t, err)
	if len(a) != 64 {
		t.Fatalf("want sha512 output, got %d bytes", len(a))
	}
	if string(a) == string(b) {
		t.Fatal("sign bytes must depend on the chain id")
	}
	if string(a) == string(c) {
		t.Fatal("sign bytes must depend on the sequence")
	}
}

func TestSequenceIsConsumed(t *testing.T) {
	const chainID = "seq-chain"
	key := swaptest.NewKey()
	db := store.MemStore()

	seq, err := NextNonce(db, key.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)

	tx := &signedTx{signBytes: []byte("escrow 100 tokens")}
	sig, err := SignTx(key, tx, chainID, seq)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}

	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	seq, err = NextNonce(db, key.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// the very same bytes are refused once accepted
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)
	seq, err = NextNonce(db, key.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := UserData{Sequence: 4}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(3))
	assert.Nil(t, u.CheckAndIncrementSequence(4))
	assert.Equal(t, int64(5), u.Sequence)

	u = UserData{Sequence: maxSequenceValue}
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(maxSequenceValue))

	raw, err := (&UserData{Sequence: 7}).Marshal()
	assert.Nil(t, err)
	var got UserData
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, int64(7), got.Sequence)
	assert.IsErr(t, errors.ErrInvalidInput, got.Unmarshal(raw[:3]))
}

func TestDecorator(t *testing.T) {
	const chainID = "deco-chain"
	key := swaptest.NewKey()
	ctx := swapper.WithChainID(context.Background(), chainID)
	db := store.MemStore()
	auth := Authenticate{}

	tx := &signedTx{signBytes: []byte("payload")}
	sig, err := SignTx(key, tx, chainID, 0)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{sig}

	var seen []swapper.Address
	h := &checkingHandler{fn: func(ctx swapper.Context) {
		seen = auth.GetAddresses(ctx)
	}}

	_, err = NewDecorator().Deliver(ctx, db, tx, h)
	assert.Nil(t, err)
	assert.Equal(t, []swapper.Address{key.PublicKey()}, seen)

	_, err = NewDecorator().Check(ctx, db, &signedTx{signBytes: []byte("payload")}, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// unsigned transaction types pass only when allowed
	_, err = NewDecorator().Deliver(ctx, db, &swaptest.Tx{}, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	seen = nil
	_, err = NewDecorator().AllowMissingSigs().Deliver(ctx, db, &swaptest.Tx{}, h)
	assert.Nil(t, err)
	assert.Nil(t, seen)
	if auth.HasAddress(ctx, key.PublicKey()) {
		t.Fatal("signers must not leak into the parent context")
	}
}

type checkingHandler struct {
	fn func(swapper.Context)
}

func (h *checkingHandler) Check(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	h.fn(ctx)
	return &swapper.CheckResult{}, nil
}

func (h *checkingHandler) Deliver(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	h.fn(ctx)
	return &swapper.DeliverResult{}, nil
}
