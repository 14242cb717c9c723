package offer

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/orm"
	"github.com/tokenswap/swapper/x/token"
)

var offerBucket = orm.NewModelBucket("offer")

// Ledger is the subset of the token controller this package relies on.
type Ledger interface {
	RentExempt(db swapper.ReadOnlyKVStore, size int) (uint64, error)
	Lamports(db swapper.ReadOnlyKVStore, addr swapper.Address) (uint64, error)
	MoveLamports(db swapper.KVStore, from, to swapper.Address, amount uint64) error
	Reclaim(db swapper.KVStore, from, to swapper.Address) (uint64, error)
	GetMint(db swapper.ReadOnlyKVStore, addr swapper.Address) (*token.Mint, error)
	GetAccount(db swapper.ReadOnlyKVStore, addr swapper.Address) (*token.Account, error)
	CreateAccount(ctx swapper.Context, db swapper.KVStore, addr, mint, owner, payer swapper.Address) error
	EnsureAssociatedAccount(ctx swapper.Context, db swapper.KVStore, wallet, mint, payer swapper.Address) (swapper.Address, error)
	TransferChecked(ctx swapper.Context, db swapper.KVStore, from, mint, to swapper.Address, amount uint64, decimals uint8) error
	CloseAccount(ctx swapper.Context, db swapper.KVStore, addr, destination swapper.Address) error
}

var _ Ledger = token.Controller{}

// Registry stores offers at their derived addresses.
type Registry struct {
	ledger Ledger
}

// NewRegistry returns a registry that charges reservations through the
// given ledger.
func NewRegistry(ledger Ledger) Registry {
	return Registry{ledger: ledger}
}

// Create persists the offer at its derived address and returns that
// address. The maker pays the record reservation. Creating an offer at an
// occupied address fails with ErrAddressOccupied.
func (r Registry) Create(db swapper.KVStore, program swapper.Address, o *Offer) (swapper.Address, error) {
	addr, err := o.Condition(program).Address()
	if err != nil {
		return addr, errors.Wrap(err, "offer address")
	}
	if err := checkVacant(db, addr); err != nil {
		return addr, errors.Wrapf(err, "offer %d of %s", o.ID, o.Maker)
	}
	rent, err := r.ledger.RentExempt(db, OfferSize)
	if err != nil {
		return addr, err
	}
	if err := r.ledger.MoveLamports(db, o.Maker, addr, rent); err != nil {
		return addr, errors.Wrap(err, "offer reservation")
	}
	if err := offerBucket.Create(db, addr[:], o); err != nil {
		return addr, err
	}
	return addr, nil
}

// checkVacant returns ErrAddressOccupied if an offer is stored at addr.
func checkVacant(db swapper.ReadOnlyKVStore, addr swapper.Address) error {
	switch err := offerBucket.Has(db, addr[:]); {
	case err == nil:
		return errors.ErrAddressOccupied
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}

// Get loads the offer stored at addr. It returns ErrNotFound if there is
// none.
func (r Registry) Get(db swapper.ReadOnlyKVStore, addr swapper.Address) (*Offer, error) {
	var o Offer
	if err := offerBucket.One(db, addr[:], &o); err != nil {
		return nil, errors.Wrapf(err, "offer %s", addr)
	}
	return &o, nil
}

// Delete removes the offer stored at addr and refunds its reservation to
// recipient.
func (r Registry) Delete(db swapper.KVStore, addr, recipient swapper.Address) error {
	if err := offerBucket.Delete(db, addr[:]); err != nil {
		return errors.Wrapf(err, "offer %s", addr)
	}
	if _, err := r.ledger.Reclaim(db, addr, recipient); err != nil {
		return errors.Wrap(err, "refund offer reservation")
	}
	return nil
}

// Filter selects offers. Zero fields match everything.
type Filter struct {
	Maker         swapper.Address
	TokenMintA    swapper.Address
	TokenMintB    swapper.Address
	WantedAmountB uint64
}

func (f Filter) match(o *Offer) bool {
	switch {
	case !f.Maker.IsZero() && !f.Maker.Equals(o.Maker):
		return false
	case !f.TokenMintA.IsZero() && !f.TokenMintA.Equals(o.TokenMintA):
		return false
	case !f.TokenMintB.IsZero() && !f.TokenMintB.Equals(o.TokenMintB):
		return false
	case f.WantedAmountB != 0 && f.WantedAmountB != o.WantedAmountB:
		return false
	}
	return true
}

// StoredOffer is an offer together with its address.
type StoredOffer struct {
	Address swapper.Address
	Offer   Offer
}

// Find returns all open offers matching the filter, ordered by address.
func (r Registry) Find(db swapper.ReadOnlyKVStore, filter Filter) ([]StoredOffer, error) {
	var res []StoredOffer
	err := offerBucket.Iterate(db, func(key, raw []byte) error {
		var o Offer
		if err := o.Unmarshal(raw); err != nil {
			return errors.Wrapf(err, "offer %x", key)
		}
		if !filter.match(&o) {
			return nil
		}
		var addr swapper.Address
		copy(addr[:], key)
		res = append(res, StoredOffer{Address: addr, Offer: o})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
