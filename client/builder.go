package client

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/app"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/token"
)

// BuildCreateOffer returns the message escrowing offered tokens of mintA
// for wanted tokens of mintB. Every account is derived from the program,
// the maker, the mints and the offer id.
func BuildCreateOffer(program, maker, mintA, mintB swapper.Address, id, offered, wanted uint64) (*offer.CreateOfferMsg, error) {
	offerAddr, _, err := offer.DeriveOfferAddress(program, maker, id)
	if err != nil {
		return nil, err
	}
	makerAccountA, err := token.AssociatedAddress(maker, mintA)
	if err != nil {
		return nil, errors.Wrap(err, "maker account")
	}
	vault, err := token.AssociatedAddress(offerAddr, mintA)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	return &offer.CreateOfferMsg{
		ID:             id,
		OfferedAmountA: offered,
		WantedAmountB:  wanted,
		Maker:          maker,
		TokenMintA:     mintA,
		TokenMintB:     mintB,
		MakerAccountA:  makerAccountA,
		Vault:          vault,
		Offer:          offerAddr,
	}, nil
}

// BuildFulfillOffer returns the message settling the offer id of maker on
// behalf of taker.
func BuildFulfillOffer(program, taker, maker, mintA, mintB swapper.Address, id uint64) (*offer.FulfillOfferMsg, error) {
	offerAddr, _, err := offer.DeriveOfferAddress(program, maker, id)
	if err != nil {
		return nil, err
	}
	msg := &offer.FulfillOfferMsg{
		Taker:      taker,
		Maker:      maker,
		TokenMintA: mintA,
		TokenMintB: mintB,
		Offer:      offerAddr,
	}
	accounts := []associated{
		{&msg.TakerAccountA, taker, mintA},
		{&msg.TakerAccountB, taker, mintB},
		{&msg.MakerAccountB, maker, mintB},
		{&msg.Vault, offerAddr, mintA},
	}
	for _, a := range accounts {
		addr, err := token.AssociatedAddress(a.wallet, a.mint)
		if err != nil {
			return nil, err
		}
		*a.dst = addr
	}
	return msg, nil
}

// associated is an account to derive from its wallet and mint.
type associated struct {
	dst          *swapper.Address
	wallet, mint swapper.Address
}

// Signer is a key together with the sequence its next signature must
// carry. See Client.NextNonce.
type Signer struct {
	Key      solana.PrivateKey
	Sequence int64
}

// SignTx wraps msg into a transaction signed by every signer for given
// chain.
func SignTx(msg swapper.Msg, chainID string, signers ...Signer) (*app.Tx, error) {
	tx := app.NewTx(msg)
	for _, s := range signers {
		if err := tx.Sign(s.Key, chainID, s.Sequence); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
