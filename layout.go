package swapper

import (
	"crypto/sha256"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper/errors"
)

// DiscriminatorSize is the length of the type tag that prefixes records and
// instructions.
const DiscriminatorSize = 8

// Discriminator returns the type tag for the given namespace and name. It is
// the first 8 bytes of sha256("<namespace>:<name>"), the layout used by
// deployed programs for their accounts ("account") and instructions
// ("global").
func Discriminator(namespace, name string) [DiscriminatorSize]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var d [DiscriminatorSize]byte
	copy(d[:], sum[:DiscriminatorSize])
	return d
}

// EncodeAddress writes the raw 32 bytes of an address.
func EncodeAddress(enc *bin.Encoder, a Address) error {
	return enc.WriteBytes(a[:], false)
}

// DecodeAddress reads the raw 32 bytes of an address.
func DecodeAddress(dec *bin.Decoder) (Address, error) {
	var a Address
	raw, err := dec.ReadNBytes(len(a))
	if err != nil {
		return a, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	copy(a[:], raw)
	return a, nil
}

// ExpectDiscriminator consumes the type tag and fails if it differs from want.
func ExpectDiscriminator(dec *bin.Decoder, want [DiscriminatorSize]byte) error {
	raw, err := dec.ReadNBytes(DiscriminatorSize)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var got [DiscriminatorSize]byte
	copy(got[:], raw)
	if got != want {
		return errors.Wrapf(errors.ErrInvalidInput, "discriminator %x, want %x", got, want)
	}
	return nil
}

// ExpectConsumed fails if the decoder has unread bytes left.
func ExpectConsumed(dec *bin.Decoder) error {
	if n := dec.Remaining(); n != 0 {
		return errors.Wrapf(errors.ErrInvalidInput, "%d trailing bytes", n)
	}
	return nil
}
