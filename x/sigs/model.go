package sigs

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/orm"
)

// ErrInvalidSequence is returned when a signature does not carry the
// current sequence of its signer.
var ErrInvalidSequence = errors.Register(20, "invalid sequence")

// userSize is the serialized size of UserData
const userSize = 8

// maxSequenceValue keeps sequences within what a float64 based client
// can represent exactly.
const maxSequenceValue = (1 << 53) - 1

var userBucket = orm.NewModelBucket("sigs")

// UserData tracks the sequence of a signer. The record is keyed by the
// signer's public key and created on its first signature.
type UserData struct {
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		return errors.Wrapf(ErrInvalidSequence, "out of range: %d", u.Sequence)
	}
	return nil
}

func (u *UserData) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint64(uint64(u.Sequence), binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (u *UserData) Unmarshal(raw []byte) error {
	if len(raw) != userSize {
		return errors.Wrapf(errors.ErrInvalidInput, "user size %d", len(raw))
	}
	seq, err := bin.NewBorshDecoder(raw).ReadUint64(binary.LittleEndian)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	u.Sequence = int64(seq)
	return nil
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// loadUser returns the state of signer, or a fresh one if it never signed.
func loadUser(db swapper.ReadOnlyKVStore, signer swapper.Address) (*UserData, error) {
	var u UserData
	switch err := userBucket.One(db, signer[:], &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{}, nil
	default:
		return nil, err
	}
}

// NextNonce returns the sequence the next signature of signer must carry.
// Counting starts with zero.
func NextNonce(db swapper.ReadOnlyKVStore, signer swapper.Address) (int64, error) {
	u, err := loadUser(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "load signer")
	}
	return u.Sequence, nil
}
