package sigs

import (
	"context"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx swapper.Context, signers []swapper.Address) swapper.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reports the addresses whose signatures were verified.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns who signed the current Context.
// May be empty
func (a Authenticate) GetAddresses(ctx swapper.Context) []swapper.Address {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]swapper.Address)
	return val
}

// HasAddress returns true if the given address signed the current Context.
func (a Authenticate) HasAddress(ctx swapper.Context, addr swapper.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
