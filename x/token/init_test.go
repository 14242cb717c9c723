package token

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/store"
	"github.com/tokenswap/swapper/swaptest"
	"github.com/tokenswap/swapper/swaptest/assert"
)

func TestGenesis(t *testing.T) {
	alice := swaptest.NewAddress()
	mint := swaptest.NewAddress()

	genesis := fmt.Sprintf(`{
		"conf": {"token": {"lamports_per_byte_year": 10, "exemption_years": 1}},
		"wallets": [{"address": %q, "lamports": 100000}],
		"mints": [{"address": %q, "decimals": 2, "payer": %q}],
		"balances": [
			{"owner": %q, "mint": %q, "amount": 500},
			{"owner": %q, "mint": %q, "amount": 250}
		]
	}`, alice, mint, alice, alice, mint, alice, mint)

	var opts swapper.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ctrl := NewController(&swaptest.Auth{})
	acc, err := AssociatedAddress(alice, mint)
	assert.Nil(t, err)
	balance, err := ctrl.Balance(db, acc)
	assert.Nil(t, err)
	assert.Equal(t, uint64(750), balance)

	m, err := ctrl.GetMint(db, mint)
	assert.Nil(t, err)
	assert.Equal(t, uint64(750), m.Supply)
	assert.Equal(t, uint8(2), m.Decimals)

	lamports, err := ctrl.Lamports(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100000-(128+MintSize)*10-(128+AccountSize)*10), lamports)
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	var opts swapper.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"wallets": []}`), &opts))
	err := Initializer{}.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrNotFound, err)
}
