package offer

import (
	"context"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/x"
)

type contextKey int // local to the offer module

const (
	contextKeyOffer contextKey = iota
)

// withOfferAuthority is a private method, as only this module can act as
// an offer. Callers must have checked that the condition reproduces the
// offer address.
func withOfferAuthority(ctx swapper.Context, addr swapper.Address) swapper.Context {
	return context.WithValue(ctx, contextKeyOffer, addr)
}

// Authenticate reports the offer address this package is acting as, if
// any.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns the offer authority of the current Context.
// May be empty
func (a Authenticate) GetAddresses(ctx swapper.Context) []swapper.Address {
	val, ok := ctx.Value(contextKeyOffer).(swapper.Address)
	if !ok {
		return nil
	}
	return []swapper.Address{val}
}

// HasAddress returns true if the current Context acts as addr.
func (a Authenticate) HasAddress(ctx swapper.Context, addr swapper.Address) bool {
	val, ok := ctx.Value(contextKeyOffer).(swapper.Address)
	return ok && val.Equals(addr)
}
