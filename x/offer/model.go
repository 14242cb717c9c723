package offer

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/orm"
)

// OfferSize is the serialized size of an Offer, type tag included.
const OfferSize = swapper.DiscriminatorSize + 8 + 32 + 32 + 32 + 8 + 1

var offerDiscriminator = swapper.Discriminator("account", "Offer")

// Offer is an open escrow. It is immutable from creation until it is
// fulfilled and deleted.
type Offer struct {
	ID            uint64
	Maker         swapper.Address
	TokenMintA    swapper.Address
	TokenMintB    swapper.Address
	WantedAmountB uint64
	Bump          uint8
}

var _ orm.Model = (*Offer)(nil)

// Validate checks the offer fields.
func (o *Offer) Validate() error {
	if err := swapper.ValidateAddress(o.Maker); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := swapper.ValidateAddress(o.TokenMintA); err != nil {
		return errors.Wrap(err, "token mint a")
	}
	if err := swapper.ValidateAddress(o.TokenMintB); err != nil {
		return errors.Wrap(err, "token mint b")
	}
	if o.WantedAmountB == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "wanted amount must be positive")
	}
	return nil
}

// Marshal writes the record in the layout deployed programs use.
func (o *Offer) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(OfferSize)
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteBytes(offerDiscriminator[:], false); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(o.ID, binary.LittleEndian); err != nil {
		return nil, err
	}
	for _, a := range []swapper.Address{o.Maker, o.TokenMintA, o.TokenMintB} {
		if err := swapper.EncodeAddress(enc, a); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteUint64(o.WantedAmountB, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(o.Bump); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal reads a record written by Marshal.
func (o *Offer) Unmarshal(raw []byte) error {
	if len(raw) != OfferSize {
		return errors.Wrapf(errors.ErrInvalidInput, "offer size %d", len(raw))
	}
	dec := bin.NewBorshDecoder(raw)
	if err := swapper.ExpectDiscriminator(dec, offerDiscriminator); err != nil {
		return err
	}
	var res Offer
	var err error
	if res.ID, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if res.Maker, err = swapper.DecodeAddress(dec); err != nil {
		return err
	}
	if res.TokenMintA, err = swapper.DecodeAddress(dec); err != nil {
		return err
	}
	if res.TokenMintB, err = swapper.DecodeAddress(dec); err != nil {
		return err
	}
	if res.WantedAmountB, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if res.Bump, err = dec.ReadUint8(); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*o = res
	return nil
}

// Condition returns the keyless authority of this offer.
func (o *Offer) Condition(program swapper.Address) swapper.Condition {
	return OfferCondition(program, o.Maker, o.ID, o.Bump)
}

// Validate fails with ErrMismatch if the supplied maker or mints differ from
// the ones recorded on the offer.
func Validate(o *Offer, maker, mintA, mintB swapper.Address) error {
	switch {
	case !o.Maker.Equals(maker):
		return errors.Wrapf(errors.ErrMismatch, "maker %s, offer made by %s", maker, o.Maker)
	case !o.TokenMintA.Equals(mintA):
		return errors.Wrapf(errors.ErrMismatch, "mint a %s, offer escrows %s", mintA, o.TokenMintA)
	case !o.TokenMintB.Equals(mintB):
		return errors.Wrapf(errors.ErrMismatch, "mint b %s, offer wants %s", mintB, o.TokenMintB)
	}
	return nil
}
