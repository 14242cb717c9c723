package offer

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x"
	"github.com/tokenswap/swapper/x/token"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r swapper.Registry, auth x.Authenticator, ledger Ledger) {
	registry := NewRegistry(ledger)
	r.Handle(&CreateOfferMsg{}, CreateOfferHandler{auth: auth, ledger: ledger, registry: registry})
	r.Handle(&FulfillOfferMsg{}, FulfillOfferHandler{auth: auth, ledger: ledger, registry: registry})
}

// CreateOfferHandler opens a new offer and escrows the offered tokens.
type CreateOfferHandler struct {
	auth     x.Authenticator
	ledger   Ledger
	registry Registry
}

var _ swapper.Handler = CreateOfferHandler{}

// Check verifies the message and every supplied account without touching
// the state.
func (h CreateOfferHandler) Check(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapper.CheckResult{}, nil
}

// Deliver creates the vault, moves the offered tokens into it and stores
// the offer.
func (h CreateOfferHandler) Deliver(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg := p.msg

	if err := h.ledger.CreateAccount(ctx, db, msg.Vault, msg.TokenMintA, msg.Offer, msg.Maker); err != nil {
		return nil, errors.Wrap(err, "create vault")
	}
	if err := h.ledger.TransferChecked(ctx, db, msg.MakerAccountA, msg.TokenMintA, msg.Vault, msg.OfferedAmountA, p.mintA.Decimals); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}

	o := &Offer{
		ID:            msg.ID,
		Maker:         msg.Maker,
		TokenMintA:    msg.TokenMintA,
		TokenMintB:    msg.TokenMintB,
		WantedAmountB: msg.WantedAmountB,
		Bump:          p.bump,
	}
	addr, err := h.registry.Create(db, p.program, o)
	if err != nil {
		return nil, errors.Wrap(err, "store offer")
	}

	swapper.GetLogger(ctx).Debug("offer created",
		"offer", addr, "vault", msg.Vault, "id", msg.ID, "bump", p.bump)
	return &swapper.DeliverResult{Data: addr[:], Log: "offer created"}, nil
}

type createParams struct {
	msg     *CreateOfferMsg
	program swapper.Address
	mintA   *token.Mint
	bump    uint8
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateOfferHandler) validate(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*createParams, error) {
	var msg CreateOfferMsg
	if err := swapper.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker must sign")
	}

	mintA, err := h.ledger.GetMint(db, msg.TokenMintA)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAccount, err.Error())
	}
	if _, err := h.ledger.GetMint(db, msg.TokenMintB); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAccount, err.Error())
	}
	if err := expectAssociated(msg.MakerAccountA, msg.Maker, msg.TokenMintA, errors.ErrInvalidAccount); err != nil {
		return nil, errors.Wrap(err, "maker account a")
	}

	program, err := LoadProgramID(db)
	if err != nil {
		return nil, err
	}
	addr, bump, err := DeriveOfferAddress(program, msg.Maker, msg.ID)
	if err != nil {
		return nil, err
	}
	if !addr.Equals(msg.Offer) {
		return nil, errors.Wrapf(errors.ErrInvalidAccount, "offer %s, derived %s", msg.Offer, addr)
	}
	if err := expectAssociated(msg.Vault, addr, msg.TokenMintA, errors.ErrInvalidAccount); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if err := checkVacant(db, addr); err != nil {
		return nil, errors.Wrapf(err, "offer %d of %s", msg.ID, msg.Maker)
	}
	return &createParams{msg: &msg, program: program, mintA: mintA, bump: bump}, nil
}

// FulfillOfferHandler settles an open offer.
type FulfillOfferHandler struct {
	auth     x.Authenticator
	ledger   Ledger
	registry Registry
}

var _ swapper.Handler = FulfillOfferHandler{}

// Check verifies the message and every supplied account without touching
// the state.
func (h FulfillOfferHandler) Check(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &swapper.CheckResult{}, nil
}

// Deliver pays the maker, releases the vault to the taker, closes the vault
// and deletes the offer.
func (h FulfillOfferHandler) Deliver(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*swapper.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	msg := p.msg

	if _, err := h.ledger.EnsureAssociatedAccount(ctx, db, msg.Taker, msg.TokenMintA, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "taker account a")
	}
	if _, err := h.ledger.EnsureAssociatedAccount(ctx, db, msg.Maker, msg.TokenMintB, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "maker account b")
	}

	mintA, err := h.ledger.GetMint(db, msg.TokenMintA)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAccount, err.Error())
	}
	mintB, err := h.ledger.GetMint(db, msg.TokenMintB)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAccount, err.Error())
	}

	if err := h.ledger.TransferChecked(ctx, db, msg.TakerAccountB, msg.TokenMintB, msg.MakerAccountB, p.offer.WantedAmountB, mintB.Decimals); err != nil {
		return nil, errors.Wrap(err, "pay maker")
	}

	// From here on the offer address signs.
	offerCtx := withOfferAuthority(ctx, msg.Offer)
	if err := h.ledger.TransferChecked(offerCtx, db, msg.Vault, msg.TokenMintA, msg.TakerAccountA, p.vault.Amount, mintA.Decimals); err != nil {
		return nil, errors.Wrap(err, "release vault")
	}
	if err := h.ledger.CloseAccount(offerCtx, db, msg.Vault, msg.Taker); err != nil {
		return nil, errors.Wrap(err, "close vault")
	}
	if err := h.registry.Delete(db, msg.Offer, p.offer.Maker); err != nil {
		return nil, errors.Wrap(err, "delete offer")
	}

	swapper.GetLogger(ctx).Debug("offer fulfilled",
		"offer", msg.Offer, "taker", msg.Taker, "released", p.vault.Amount)
	return &swapper.DeliverResult{Data: msg.Offer[:], Log: "offer fulfilled"}, nil
}

type fulfillParams struct {
	msg   *FulfillOfferMsg
	offer *Offer
	vault *token.Account
}

// validate does all common pre-processing between Check and Deliver.
func (h FulfillOfferHandler) validate(ctx swapper.Context, db swapper.KVStore, tx swapper.Tx) (*fulfillParams, error) {
	var msg FulfillOfferMsg
	if err := swapper.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker must sign")
	}

	o, err := h.registry.Get(db, msg.Offer)
	if err != nil {
		return nil, err
	}
	if err := Validate(o, msg.Maker, msg.TokenMintA, msg.TokenMintB); err != nil {
		return nil, err
	}

	program, err := LoadProgramID(db)
	if err != nil {
		return nil, err
	}
	addr, err := o.Condition(program).Address()
	if err != nil {
		return nil, err
	}
	if !addr.Equals(msg.Offer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "offer %s is not derived from its record", msg.Offer)
	}

	vault, err := h.ledger.GetAccount(db, msg.Vault)
	if err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	if !vault.Owner.Equals(addr) || !vault.Mint.Equals(o.TokenMintA) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "vault %s is not held by the offer", msg.Vault)
	}
	if err := expectAssociated(msg.Vault, addr, o.TokenMintA, errors.ErrUnauthorized); err != nil {
		return nil, errors.Wrap(err, "vault")
	}

	if err := expectAssociated(msg.TakerAccountB, msg.Taker, msg.TokenMintB, errors.ErrInvalidAccount); err != nil {
		return nil, errors.Wrap(err, "taker account b")
	}
	if err := expectAssociated(msg.TakerAccountA, msg.Taker, msg.TokenMintA, errors.ErrInvalidAccount); err != nil {
		return nil, errors.Wrap(err, "taker account a")
	}
	if err := expectAssociated(msg.MakerAccountB, msg.Maker, msg.TokenMintB, errors.ErrInvalidAccount); err != nil {
		return nil, errors.Wrap(err, "maker account b")
	}
	return &fulfillParams{msg: &msg, offer: o, vault: vault}, nil
}

// expectAssociated fails with kind unless account is the associated account
// of wallet for mint.
func expectAssociated(account, wallet, mint swapper.Address, kind *errors.Error) error {
	want, err := token.AssociatedAddress(wallet, mint)
	if err != nil {
		return err
	}
	if !want.Equals(account) {
		return errors.Wrapf(kind, "%s is not the associated account of %s for %s", account, wallet, mint)
	}
	return nil
}
