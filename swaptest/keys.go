package swaptest

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
)

// NewKey returns a fresh ed25519 key. It panics if the system random source
// is not available.
func NewKey() solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// NewAddress returns the address of a fresh key.
func NewAddress() swapper.Address {
	return NewKey().PublicKey()
}
