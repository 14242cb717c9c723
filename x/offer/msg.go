package offer

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

const (
	pathCreateOfferMsg  = "offer/create"
	pathFulfillOfferMsg = "offer/fulfill"
)

var (
	createOfferDiscriminator  = swapper.Discriminator("global", "make_offer")
	fulfillOfferDiscriminator = swapper.Discriminator("global", "take_offer")
)

// CreateOfferMsg escrows OfferedAmountA of TokenMintA in exchange for
// WantedAmountB of TokenMintB.
type CreateOfferMsg struct {
	ID             uint64
	OfferedAmountA uint64
	WantedAmountB  uint64

	Maker         swapper.Address
	TokenMintA    swapper.Address
	TokenMintB    swapper.Address
	MakerAccountA swapper.Address
	Vault         swapper.Address
	Offer         swapper.Address
}

var _ swapper.Msg = (*CreateOfferMsg)(nil)

func (CreateOfferMsg) Path() string {
	return pathCreateOfferMsg
}

func (m *CreateOfferMsg) accounts() []*swapper.Address {
	return []*swapper.Address{&m.Maker, &m.TokenMintA, &m.TokenMintB, &m.MakerAccountA, &m.Vault, &m.Offer}
}

func (m *CreateOfferMsg) Validate() error {
	if m.OfferedAmountA == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "offered amount must be positive")
	}
	if m.WantedAmountB == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "wanted amount must be positive")
	}
	return validateAccounts(m.accounts())
}

func (m *CreateOfferMsg) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteBytes(createOfferDiscriminator[:], false); err != nil {
		return nil, err
	}
	for _, v := range []uint64{m.ID, m.OfferedAmountA, m.WantedAmountB} {
		if err := enc.WriteUint64(v, binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	if err := encodeAccounts(enc, m.accounts()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *CreateOfferMsg) Unmarshal(raw []byte) error {
	dec := bin.NewBorshDecoder(raw)
	if err := swapper.ExpectDiscriminator(dec, createOfferDiscriminator); err != nil {
		return err
	}
	var res CreateOfferMsg
	for _, v := range []*uint64{&res.ID, &res.OfferedAmountA, &res.WantedAmountB} {
		n, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		*v = n
	}
	if err := decodeAccounts(dec, res.accounts()); err != nil {
		return err
	}
	*m = res
	return nil
}

// FulfillOfferMsg settles an open offer on behalf of Taker.
type FulfillOfferMsg struct {
	Taker         swapper.Address
	Maker         swapper.Address
	TokenMintA    swapper.Address
	TokenMintB    swapper.Address
	TakerAccountA swapper.Address
	TakerAccountB swapper.Address
	MakerAccountB swapper.Address
	Offer         swapper.Address
	Vault         swapper.Address
}

var _ swapper.Msg = (*FulfillOfferMsg)(nil)

func (FulfillOfferMsg) Path() string {
	return pathFulfillOfferMsg
}

func (m *FulfillOfferMsg) accounts() []*swapper.Address {
	return []*swapper.Address{
		&m.Taker, &m.Maker, &m.TokenMintA, &m.TokenMintB,
		&m.TakerAccountA, &m.TakerAccountB, &m.MakerAccountB,
		&m.Offer, &m.Vault,
	}
}

func (m *FulfillOfferMsg) Validate() error {
	return validateAccounts(m.accounts())
}

func (m *FulfillOfferMsg) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteBytes(fulfillOfferDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := encodeAccounts(enc, m.accounts()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *FulfillOfferMsg) Unmarshal(raw []byte) error {
	dec := bin.NewBorshDecoder(raw)
	if err := swapper.ExpectDiscriminator(dec, fulfillOfferDiscriminator); err != nil {
		return err
	}
	var res FulfillOfferMsg
	if err := decodeAccounts(dec, res.accounts()); err != nil {
		return err
	}
	*m = res
	return nil
}

func validateAccounts(accounts []*swapper.Address) error {
	for i, a := range accounts {
		if err := swapper.ValidateAddress(*a); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}

func encodeAccounts(enc *bin.Encoder, accounts []*swapper.Address) error {
	for _, a := range accounts {
		if err := swapper.EncodeAddress(enc, *a); err != nil {
			return err
		}
	}
	return nil
}

func decodeAccounts(dec *bin.Decoder, accounts []*swapper.Address) error {
	for i, a := range accounts {
		addr, err := swapper.DecodeAddress(dec)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		*a = addr
	}
	return swapper.ExpectConsumed(dec)
}
