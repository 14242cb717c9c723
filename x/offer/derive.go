package offer

import (
	"encoding/binary"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// seedTag is the domain tag that starts the seeds of every offer address.
var seedTag = []byte("offer")

// offerSeeds returns the seeds of an offer address without the bump.
func offerSeeds(maker swapper.Address, id uint64) [][]byte {
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, id)
	return [][]byte{seedTag, maker[:], idBytes}
}

// DeriveOfferAddress returns the address of the offer created by maker with
// the given id, together with the bump that moves it off the ed25519 curve.
// The result matches the address a deployed program computes for the same
// inputs.
func DeriveOfferAddress(program, maker swapper.Address, id uint64) (swapper.Address, uint8, error) {
	addr, bump, err := swapper.DeriveAddress(program, offerSeeds(maker, id)...)
	if err != nil {
		return swapper.Address{}, 0, errors.Wrapf(err, "offer address of %s/%d", maker, id)
	}
	return addr, bump, nil
}

// OfferCondition returns the keyless authority of an offer. Its address is
// the offer address if bump is the one returned by DeriveOfferAddress.
func OfferCondition(program, maker swapper.Address, id uint64, bump uint8) swapper.Condition {
	seeds := append(offerSeeds(maker, id), []byte{bump})
	return swapper.NewCondition(program, seeds...)
}
