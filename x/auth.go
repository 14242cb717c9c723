package x

import (
	"github.com/tokenswap/swapper"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding x/sigs for all extensions.
type Authenticator interface {
	// GetAddresses reveals all addresses authorized in this context
	GetAddresses(swapper.Context) []swapper.Address
	// HasAddress checks if this address is authorized
	HasAddress(swapper.Context, swapper.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators
func (m MultiAuth) GetAddresses(ctx swapper.Context) []swapper.Address {
	var res []swapper.Address
	for _, impl := range m.impls {
		add := impl.GetAddresses(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx swapper.Context, addr swapper.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authorized address if any. The second
// return value is false when nothing is authorized.
func MainSigner(ctx swapper.Context, auth Authenticator) (swapper.Address, bool) {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return swapper.Address{}, false
	}
	return signers[0], true
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx swapper.Context, auth Authenticator, required []swapper.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
