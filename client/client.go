package client

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/app"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/sigs"
	"github.com/tokenswap/swapper/x/token"
)

// Node is the ledger a client talks to. *app.App implements it.
type Node interface {
	ChainID() string
	CheckTx(txBytes []byte) (*swapper.CheckResult, error)
	DeliverTx(txBytes []byte) (*swapper.DeliverResult, error)
	Commit() (swapper.CommitID, error)
	View(fn func(db swapper.ReadOnlyKVStore) error) error
}

var _ Node = (*app.App)(nil)

// Client builds, signs and submits offer transactions, and reads the
// offers and balances they act on.
type Client struct {
	node     Node
	ledger   token.Controller
	registry offer.Registry
}

// NewClient wraps a node.
func NewClient(node Node) *Client {
	ledger := app.TokenControl()
	return &Client{
		node:     node,
		ledger:   ledger,
		registry: offer.NewRegistry(ledger),
	}
}

// ProgramID returns the program id configured on the ledger.
func (c *Client) ProgramID(ctx context.Context) (swapper.Address, error) {
	var program swapper.Address
	err := c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		var err error
		program, err = offer.LoadProgramID(db)
		return err
	})
	return program, err
}

// CommitTx checks the transaction, then delivers and commits it. A
// transaction rejected by the check is never delivered.
func (c *Client) CommitTx(ctx context.Context, tx swapper.Tx) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal tx")
	}
	res := &CommitResult{ID: txID(raw)}
	if _, err := c.node.CheckTx(raw); err != nil {
		res.Err = err
		return res, nil
	}
	res.Result, res.Err = c.node.DeliverTx(raw)
	info, err := c.node.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	res.Height = info.Version
	return res, nil
}

// MakeOffer escrows offered tokens of mintA held by the maker in exchange
// for wanted tokens of mintB. It returns the address of the new offer.
func (c *Client) MakeOffer(ctx context.Context, maker solana.PrivateKey, mintA, mintB swapper.Address, id, offered, wanted uint64) (swapper.Address, error) {
	program, err := c.ProgramID(ctx)
	if err != nil {
		return swapper.Address{}, err
	}
	msg, err := BuildCreateOffer(program, maker.PublicKey(), mintA, mintB, id, offered, wanted)
	if err != nil {
		return swapper.Address{}, err
	}
	if err := c.submit(ctx, msg, maker); err != nil {
		return swapper.Address{}, err
	}
	return msg.Offer, nil
}

// TakeOffer settles the offer id of maker, paying with tokens of mintB
// held by the taker.
func (c *Client) TakeOffer(ctx context.Context, taker solana.PrivateKey, maker, mintA, mintB swapper.Address, id uint64) error {
	program, err := c.ProgramID(ctx)
	if err != nil {
		return err
	}
	msg, err := BuildFulfillOffer(program, taker.PublicKey(), maker, mintA, mintB, id)
	if err != nil {
		return err
	}
	return c.submit(ctx, msg, taker)
}

// NextNonce returns the sequence the next signature of signer must carry.
func (c *Client) NextNonce(ctx context.Context, signer swapper.Address) (int64, error) {
	var seq int64
	err := c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.NextNonce(db, signer)
		return err
	})
	return seq, err
}

func (c *Client) submit(ctx context.Context, msg swapper.Msg, key solana.PrivateKey) error {
	seq, err := c.NextNonce(ctx, key.PublicKey())
	if err != nil {
		return err
	}
	tx, err := SignTx(msg, c.node.ChainID(), Signer{Key: key, Sequence: seq})
	if err != nil {
		return err
	}
	res, err := c.CommitTx(ctx, tx)
	if err != nil {
		return err
	}
	return res.Err
}

// FindOffers lists the open offers matching filter.
func (c *Client) FindOffers(ctx context.Context, filter offer.Filter) ([]offer.StoredOffer, error) {
	var offers []offer.StoredOffer
	err := c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		var err error
		offers, err = c.registry.Find(db, filter)
		return err
	})
	return offers, err
}

// Balance returns the token balance of an account.
func (c *Client) Balance(ctx context.Context, account swapper.Address) (AccountBalance, error) {
	var bal AccountBalance
	err := c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		var err error
		bal, err = c.balance(db, account)
		return err
	})
	return bal, err
}

// Lamports returns the lamports held at addr.
func (c *Client) Lamports(ctx context.Context, addr swapper.Address) (uint64, error) {
	var n uint64
	err := c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		var err error
		n, err = c.ledger.Lamports(db, addr)
		return err
	})
	return n, err
}

// Inspect reports the balances of the accounts a fulfillment of the offer
// id of maker by taker would touch. It does not modify any state and
// succeeds for offers that are not open.
func (c *Client) Inspect(ctx context.Context, taker, maker, mintA, mintB swapper.Address, id uint64) (*Inspection, error) {
	program, err := c.ProgramID(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := BuildFulfillOffer(program, taker, maker, mintA, mintB, id)
	if err != nil {
		return nil, err
	}

	res := &Inspection{
		Offer:      msg.Offer,
		Taker:      taker,
		Maker:      maker,
		TokenMintA: mintA,
		TokenMintB: mintB,
	}
	err = c.view(ctx, func(db swapper.ReadOnlyKVStore) error {
		_, err := c.registry.Get(db, msg.Offer)
		switch {
		case err == nil:
			res.Open = true
		case !errors.ErrNotFound.Is(err):
			return err
		}

		accounts := []struct {
			dst  *AccountBalance
			addr swapper.Address
		}{
			{&res.TakerAccountA, msg.TakerAccountA},
			{&res.TakerAccountB, msg.TakerAccountB},
			{&res.MakerAccountB, msg.MakerAccountB},
			{&res.Vault, msg.Vault},
		}
		for _, a := range accounts {
			bal, err := c.balance(db, a.addr)
			if err != nil {
				return err
			}
			*a.dst = bal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) balance(db swapper.ReadOnlyKVStore, account swapper.Address) (AccountBalance, error) {
	bal := AccountBalance{Address: account}
	amount, err := c.ledger.Balance(db, account)
	switch {
	case err == nil:
		bal.Exists = true
		bal.Amount = amount
	case !errors.ErrNotFound.Is(err):
		return bal, err
	}
	return bal, nil
}

func (c *Client) view(ctx context.Context, fn func(db swapper.ReadOnlyKVStore) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.node.View(fn)
}
