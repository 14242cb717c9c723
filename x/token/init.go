package token

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/gconf"
)

// GenesisMint declares an asset in the genesis document.
type GenesisMint struct {
	Address   swapper.Address `json:"address"`
	Authority swapper.Address `json:"authority"`
	Decimals  uint8           `json:"decimals"`
	// Payer funds the mint reservation. It must be funded by a wallet
	// entry.
	Payer swapper.Address `json:"payer"`
}

// GenesisWallet funds an address with lamports.
type GenesisWallet struct {
	Address  swapper.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
}

// GenesisBalance issues tokens into the associated account of an owner.
// The owner pays for the account if it does not exist yet.
type GenesisBalance struct {
	Owner  swapper.Address `json:"owner"`
	Mint   swapper.Address `json:"mint"`
	Amount uint64          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ swapper.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration, then funds wallets, creates mints
// and issues balances, in this order.
func (Initializer) FromGenesis(opts swapper.Options, db swapper.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var wallets []GenesisWallet
	if err := opts.ReadOptions("wallets", &wallets); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var mints []GenesisMint
	if err := opts.ReadOptions("mints", &mints); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var balances []GenesisBalance
	if err := opts.ReadOptions("balances", &balances); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	// Genesis is not signed, so authorization checks do not apply.
	ctrl := NewController(nil)
	for i, w := range wallets {
		if err := ctrl.Airdrop(db, w.Address, w.Lamports); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	for i, m := range mints {
		if err := ctrl.CreateMint(db, m.Address, m.Authority, m.Decimals, m.Payer); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, b := range balances {
		addr, err := AssociatedAddress(b.Owner, b.Mint)
		if err != nil {
			return errors.Wrapf(err, "balance #%d", i)
		}
		err = accountBucket.Has(db, addr[:])
		if errors.ErrNotFound.Is(err) {
			err = ctrl.createAccount(db, addr, b.Mint, b.Owner, b.Owner)
		}
		if err != nil {
			return errors.Wrapf(err, "balance #%d", i)
		}
		if err := ctrl.MintTo(db, b.Mint, addr, b.Amount); err != nil {
			return errors.Wrapf(err, "balance #%d", i)
		}
	}
	return nil
}
