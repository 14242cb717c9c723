package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/x"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/sigs"
	"github.com/tokenswap/swapper/x/token"
	"github.com/tokenswap/swapper/x/utils"
)

// Authenticator returns the authentication of signed transactions.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// TokenControl returns the ledger controller. Besides signers, the ledger
// accepts authority granted by the offer extension over offer owned
// accounts.
func TokenControl() token.Controller {
	return token.NewController(x.ChainAuth(Authenticator(), offer.Authenticate{}))
}

// Chain returns a chain of decorators, to handle logging, recovery,
// metrics and authentication.
//
// A failed check leaves no trace. A failed delivery still consumes the
// sequence of its signers, so the same signed bytes can never be
// delivered twice.
//
// metrics can be nil.
func Chain(metrics *Metrics) Decorators {
	return ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// OfferRouter returns a router dispatching the offer messages.
func OfferRouter() *Router {
	r := NewRouter()
	offer.RegisterRoutes(r, Authenticator(), TokenControl())
	return r
}

// Stack wires up the router with the decorator chain.
func Stack(metrics *Metrics) swapper.Handler {
	return Chain(metrics).WithHandler(OfferRouter())
}

// Initializer loads the token and offer state from the genesis document.
func Initializer() swapper.Initializer {
	return ChainInitializers(
		token.Initializer{},
		offer.Initializer{},
	)
}

// NewSwapApp builds the swap application on top of given store. When reg
// is not nil, transaction metrics are registered with it.
func NewSwapApp(committed swapper.CommitKVStore, logger log.Logger, reg prometheus.Registerer) (*App, error) {
	var metrics *Metrics
	if reg != nil {
		metrics = NewMetrics(reg)
	}
	return NewApp(committed, TxDecoder, Stack(metrics), logger)
}
