package client

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/tokenswap/swapper"
)

// TransactionID is the hash used to identify the transaction
type TransactionID []byte

func (id TransactionID) String() string {
	return hex.EncodeToString(id)
}

// txID returns the identifier of a serialized transaction.
func txID(raw []byte) TransactionID {
	sum := sha256.Sum256(raw)
	return sum[:]
}

// CommitResult is returned once a transaction was delivered and committed.
// Result is only set on success, Err is set if it was rejected.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *swapper.DeliverResult
	Err    error
}

// AccountBalance is the token balance of one account. Accounts that were
// never created report a zero amount.
type AccountBalance struct {
	Address swapper.Address `json:"address"`
	Exists  bool            `json:"exists"`
	Amount  uint64          `json:"amount"`
}

// Inspection reports the balances of every account a fulfillment of an
// offer touches.
type Inspection struct {
	Offer      swapper.Address `json:"offer"`
	Open       bool            `json:"open"`
	Taker      swapper.Address `json:"taker"`
	Maker      swapper.Address `json:"maker"`
	TokenMintA swapper.Address `json:"token_mint_a"`
	TokenMintB swapper.Address `json:"token_mint_b"`

	TakerAccountA AccountBalance `json:"taker_account_a"`
	TakerAccountB AccountBalance `json:"taker_account_b"`
	MakerAccountB AccountBalance `json:"maker_account_b"`
	Vault         AccountBalance `json:"vault"`
}
