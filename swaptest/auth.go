package swaptest

import (
	"context"
	"fmt"

	"github.com/tokenswap/swapper"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. Each time all signers (regardless which attribute) are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer swapper.Address

	// Signers represents an authentication of multiple signers.
	Signers []swapper.Address
}

func (a *Auth) GetAddresses(swapper.Context) []swapper.Address {
	if !a.Signer.IsZero() {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx swapper.Context, addr swapper.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve addresses.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetAddresses(ctx swapper.Context, addrs ...swapper.Address) swapper.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

func (a *CtxAuth) GetAddresses(ctx swapper.Context) []swapper.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]swapper.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []swapper.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx swapper.Context, addr swapper.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
