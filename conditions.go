package swapper

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper/errors"
)

// Address identifies an account on the ledger.
//
// It shares the layout of an ed25519 public key, so that addresses derived
// here match the ones computed by deployed programs and by any off-chain
// integrator.
type Address = solana.PublicKey

// ValidateAddress returns an error if the address is the zero value.
func ValidateAddress(a Address) error {
	if a.IsZero() {
		return errors.ErrInvalidInput.New("empty address")
	}
	return nil
}

// Condition describes an authority for which no private key exists.
//
// It is the program that owns the authority together with the seeds,
// including the trailing bump byte, that derive its address. Only code that
// can reproduce the seeds may act as that address.
type Condition struct {
	Program Address
	Seeds   [][]byte
}

// NewCondition creates a Condition for the given program and seeds.
func NewCondition(program Address, seeds ...[]byte) Condition {
	return Condition{Program: program, Seeds: seeds}
}

// Address reproduces the derived address. It fails when the seeds land on
// the ed25519 curve, as such an address could be controlled by a key.
func (c Condition) Address() (Address, error) {
	addr, err := solana.CreateProgramAddress(c.Seeds, c.Program)
	if err != nil {
		return Address{}, errors.Wrapf(errors.ErrUnauthorized, "derive: %s", err)
	}
	return addr, nil
}

// Equals checks if two conditions describe the same authority.
func (c Condition) Equals(o Condition) bool {
	if !c.Program.Equals(o.Program) || len(c.Seeds) != len(o.Seeds) {
		return false
	}
	for i := range c.Seeds {
		if string(c.Seeds[i]) != string(o.Seeds[i]) {
			return false
		}
	}
	return true
}

// String returns a human readable string.
// We keep the program in base58 and hex-encode every seed.
func (c Condition) String() string {
	return fmt.Sprintf("%s/%X", c.Program, c.Seeds)
}

// DeriveAddress finds the program derived address for the given seeds,
// returning the address and the bump that moved it off the curve.
func DeriveAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return Address{}, 0, errors.Wrapf(errors.ErrInvalidInput, "derive: %s", err)
	}
	return addr, bump, nil
}
