package token

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x"
)

// Controller is the ledger interface other extensions build on.
//
// Operations that debit an account or a balance on behalf of a user
// (TransferChecked, CloseAccount, CreateAccount and its associated
// variants) check authorization through the Authenticator. The remaining
// operations are primitives for genesis and for extensions that have
// already authorized the caller.
type Controller struct {
	auth x.Authenticator
}

// NewController returns a controller that authorizes with the given
// Authenticator.
func NewController(auth x.Authenticator) Controller {
	return Controller{auth: auth}
}

// AssociatedAddress returns the canonical account address holding the given
// mint for the given wallet. The wallet may itself be a derived address.
func AssociatedAddress(wallet, mint swapper.Address) (swapper.Address, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return swapper.Address{}, errors.Wrapf(errors.ErrInvalidInput, "associated address: %s", err)
	}
	return addr, nil
}

// RentExempt returns the reservation a record of the given size requires.
func (c Controller) RentExempt(db swapper.ReadOnlyKVStore, size int) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.RentExempt(size)
}

// Lamports returns the native balance held at an address.
func (c Controller) Lamports(db swapper.ReadOnlyKVStore, addr swapper.Address) (uint64, error) {
	var l lamports
	switch err := lamportsBucket.One(db, addr[:], &l); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return uint64(l), nil
}

func (c Controller) setLamports(db swapper.KVStore, addr swapper.Address, amount uint64) error {
	if amount == 0 {
		if err := lamportsBucket.Delete(db, addr[:]); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	l := lamports(amount)
	return lamportsBucket.Put(db, addr[:], &l)
}

// Airdrop credits new lamports to an address. It fails if the balance
// would overflow.
func (c Controller) Airdrop(db swapper.KVStore, addr swapper.Address, amount uint64) error {
	have, err := c.Lamports(db, addr)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrapf(errors.ErrOverflow, "lamports of %s", addr)
	}
	return c.setLamports(db, addr, have+amount)
}

// MoveLamports moves the given amount from one address to another.
// Callers are responsible for authorizing the debit.
func (c Controller) MoveLamports(db swapper.KVStore, from, to swapper.Address, amount uint64) error {
	if amount == 0 || from.Equals(to) {
		return nil
	}
	have, err := c.Lamports(db, from)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d lamports, %d required", from, have, amount)
	}
	dest, err := c.Lamports(db, to)
	if err != nil {
		return err
	}
	if dest+amount < dest {
		return errors.Wrapf(errors.ErrOverflow, "lamports of %s", to)
	}
	if err := c.setLamports(db, from, have-amount); err != nil {
		return err
	}
	return c.setLamports(db, to, dest+amount)
}

// Reclaim sweeps every lamport held at from into to and returns the amount
// moved. It is how the reservation of a closed record is refunded.
func (c Controller) Reclaim(db swapper.KVStore, from, to swapper.Address) (uint64, error) {
	if from.Equals(to) {
		return 0, errors.Wrap(errors.ErrInvalidInput, "cannot reclaim into the same address")
	}
	amount, err := c.Lamports(db, from)
	if err != nil {
		return 0, err
	}
	if err := c.MoveLamports(db, from, to, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// reserve moves the reservation of a record of the given size from the
// payer to the record address.
func (c Controller) reserve(db swapper.KVStore, payer, addr swapper.Address, size int) error {
	rent, err := c.RentExempt(db, size)
	if err != nil {
		return err
	}
	if err := c.MoveLamports(db, payer, addr, rent); err != nil {
		return errors.Wrap(err, "reservation")
	}
	return nil
}

// CreateMint creates a new asset at the given address. The payer funds the
// reservation of the mint record.
func (c Controller) CreateMint(db swapper.KVStore, addr, authority swapper.Address, decimals uint8, payer swapper.Address) error {
	if err := swapper.ValidateAddress(addr); err != nil {
		return errors.Wrap(err, "mint address")
	}
	if err := c.reserve(db, payer, addr, MintSize); err != nil {
		return err
	}
	mint := Mint{Authority: authority, Decimals: decimals}
	if err := mintBucket.Create(db, addr[:], &mint); err != nil {
		return errors.Wrapf(err, "mint %s", addr)
	}
	return nil
}

// GetMint loads a mint. It returns ErrNotFound if none exists.
func (c Controller) GetMint(db swapper.ReadOnlyKVStore, addr swapper.Address) (*Mint, error) {
	var mint Mint
	if err := mintBucket.One(db, addr[:], &mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", addr)
	}
	return &mint, nil
}

// MintTo issues new supply into an account. Callers are responsible for
// checking the mint authority.
func (c Controller) MintTo(db swapper.KVStore, mintAddr, accountAddr swapper.Address, amount uint64) error {
	mint, err := c.GetMint(db, mintAddr)
	if err != nil {
		return err
	}
	acc, err := c.GetAccount(db, accountAddr)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mintAddr) {
		return errors.Wrapf(errors.ErrInvalidAccount, "account %s holds mint %s", accountAddr, acc.Mint)
	}
	if mint.Supply+amount < mint.Supply || acc.Amount+amount < acc.Amount {
		return errors.Wrapf(errors.ErrOverflow, "mint %d of %s", amount, mintAddr)
	}
	mint.Supply += amount
	acc.Amount += amount
	if err := mintBucket.Put(db, mintAddr[:], mint); err != nil {
		return err
	}
	return accountBucket.Put(db, accountAddr[:], acc)
}

// GetAccount loads a token account. It returns ErrNotFound if none exists.
func (c Controller) GetAccount(db swapper.ReadOnlyKVStore, addr swapper.Address) (*Account, error) {
	var acc Account
	if err := accountBucket.One(db, addr[:], &acc); err != nil {
		return nil, errors.Wrapf(err, "account %s", addr)
	}
	return &acc, nil
}

// Balance returns the token amount held by an account.
func (c Controller) Balance(db swapper.ReadOnlyKVStore, addr swapper.Address) (uint64, error) {
	acc, err := c.GetAccount(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// CreateAccount creates an empty account for the given mint and owner at
// addr. The payer must be authorized and funds the reservation.
func (c Controller) CreateAccount(ctx swapper.Context, db swapper.KVStore, addr, mint, owner, payer swapper.Address) error {
	if !c.auth.HasAddress(ctx, payer) {
		return errors.Wrapf(errors.ErrUnauthorized, "payer %s", payer)
	}
	return c.createAccount(db, addr, mint, owner, payer)
}

func (c Controller) createAccount(db swapper.KVStore, addr, mint, owner, payer swapper.Address) error {
	if _, err := c.GetMint(db, mint); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrInvalidAccount, err.Error())
		}
		return err
	}
	switch err := accountBucket.Has(db, addr[:]); {
	case err == nil:
		return errors.Wrapf(errors.ErrAddressOccupied, "account %s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	if err := c.reserve(db, payer, addr, AccountSize); err != nil {
		return err
	}
	acc := Account{Mint: mint, Owner: owner}
	return accountBucket.Create(db, addr[:], &acc)
}

// CreateAssociatedAccount creates the associated account of wallet for
// mint and returns its address.
func (c Controller) CreateAssociatedAccount(ctx swapper.Context, db swapper.KVStore, wallet, mint, payer swapper.Address) (swapper.Address, error) {
	addr, err := AssociatedAddress(wallet, mint)
	if err != nil {
		return addr, err
	}
	if err := c.CreateAccount(ctx, db, addr, mint, wallet, payer); err != nil {
		return addr, err
	}
	return addr, nil
}

// EnsureAssociatedAccount returns the associated account of wallet for
// mint, creating it if it does not exist yet. An existing account must hold
// the right mint for the right owner.
func (c Controller) EnsureAssociatedAccount(ctx swapper.Context, db swapper.KVStore, wallet, mint, payer swapper.Address) (swapper.Address, error) {
	addr, err := AssociatedAddress(wallet, mint)
	if err != nil {
		return addr, err
	}
	acc, err := c.GetAccount(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return addr, c.CreateAccount(ctx, db, addr, mint, wallet, payer)
	case err != nil:
		return addr, err
	}
	if !acc.Mint.Equals(mint) || !acc.Owner.Equals(wallet) {
		return addr, errors.Wrapf(errors.ErrInvalidAccount, "account %s is not owned by %s for %s", addr, wallet, mint)
	}
	return addr, nil
}

// TransferChecked moves amount of mint from one account to another. The
// owner of the debited account must be authorized and decimals must match
// the mint, so that a caller cannot misread the scale of the transfer.
func (c Controller) TransferChecked(ctx swapper.Context, db swapper.KVStore, from, mintAddr, to swapper.Address, amount uint64, decimals uint8) error {
	mint, err := c.GetMint(db, mintAddr)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidAccount, err.Error())
	}
	if mint.Decimals != decimals {
		return errors.Wrapf(errors.ErrInvalidAccount, "mint %s has %d decimals, not %d", mintAddr, mint.Decimals, decimals)
	}
	src, err := c.GetAccount(db, from)
	if err != nil {
		return err
	}
	dst, err := c.GetAccount(db, to)
	if err != nil {
		return err
	}
	if !src.Mint.Equals(mintAddr) || !dst.Mint.Equals(mintAddr) {
		return errors.Wrapf(errors.ErrInvalidAccount, "transfer of %s between %s and %s", mintAddr, src.Mint, dst.Mint)
	}
	if !c.auth.HasAddress(ctx, src.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s of %s", src.Owner, from)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "%s holds %d, %d required", from, src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", to)
	}
	src.Amount -= amount
	dst.Amount += amount
	if err := accountBucket.Put(db, from[:], src); err != nil {
		return err
	}
	return accountBucket.Put(db, to[:], dst)
}

// CloseAccount removes an empty account and sweeps its reservation into
// destination. The account owner must be authorized.
func (c Controller) CloseAccount(ctx swapper.Context, db swapper.KVStore, addr, destination swapper.Address) error {
	acc, err := c.GetAccount(db, addr)
	if err != nil {
		return err
	}
	if !c.auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "owner %s of %s", acc.Owner, addr)
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrInvalidAmount, "account %s still holds %d", addr, acc.Amount)
	}
	if err := accountBucket.Delete(db, addr[:]); err != nil {
		return err
	}
	if _, err := c.Reclaim(db, addr, destination); err != nil {
		return errors.Wrap(err, "refund reservation")
	}
	return nil
}
