package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenswap/swapper/client"
	"github.com/tokenswap/swapper/swaptest"
	"github.com/tokenswap/swapper/x/offer"
)

// swapd runs the command line with given arguments against home and
// returns what was written to the output.
func swapd(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--home", home, "--log-level", "none"))
	err := cmd.Execute()
	return out.String(), err
}

func mustSwapd(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := swapd(t, home, args...)
	require.NoError(t, err, "swapd %s", strings.Join(args, " "))
	return out
}

func TestKeys(t *testing.T) {
	home := t.TempDir()

	created := mustSwapd(t, home, "keys", "new", "alice")
	shown := mustSwapd(t, home, "keys", "show", "alice")
	assert.Equal(t, created, shown)

	_, err := swapd(t, home, "keys", "new", "alice")
	assert.Error(t, err)
	_, err = swapd(t, home, "keys", "show", "bob")
	assert.Error(t, err)
	_, err = swapd(t, home, "keys", "new", "../escape")
	assert.Error(t, err)
}

func TestDerive(t *testing.T) {
	home := t.TempDir()
	maker := swaptest.NewAddress()
	mintA := swaptest.NewAddress()

	out := mustSwapd(t, home, "derive", "--maker", maker.String(), "--id", "12", "--mint-a", mintA.String())
	var got derived
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	want, bump, err := offer.DeriveOfferAddress(offer.DefaultProgramID, maker, 12)
	require.NoError(t, err)
	assert.Equal(t, want.String(), got.Offer)
	assert.Equal(t, bump, got.Bump)
	assert.NotEmpty(t, got.Vault)
}

func TestSwapFlow(t *testing.T) {
	home := t.TempDir()
	maker := strings.TrimSpace(mustSwapd(t, home, "keys", "new", "maker"))
	taker := strings.TrimSpace(mustSwapd(t, home, "keys", "new", "taker"))
	issuer := swaptest.NewAddress().String()
	mintA := swaptest.NewAddress().String()
	mintB := swaptest.NewAddress().String()

	// commands other than init need an initialized ledger
	_, err := swapd(t, home, "offers")
	assert.Error(t, err)

	genesis := fmt.Sprintf(`{
		"chain_id": "swap-local",
		"app_state": {
			"conf": {
				"token": {"lamports_per_byte_year": 3480, "exemption_years": 2},
				"offer": {"program_id": %q}
			},
			"wallets": [
				{"address": %q, "lamports": 1000000000},
				{"address": %q, "lamports": 1000000000},
				{"address": %q, "lamports": 1000000000}
			],
			"mints": [
				{"address": %q, "authority": %q, "decimals": 6, "payer": %q},
				{"address": %q, "authority": %q, "decimals": 9, "payer": %q}
			],
			"balances": [
				{"owner": %q, "mint": %q, "amount": 1000},
				{"owner": %q, "mint": %q, "amount": 500}
			]
		}
	}`, offer.DefaultProgramID, issuer, maker, taker,
		mintA, issuer, issuer, mintB, issuer, issuer,
		maker, mintA, taker, mintB)
	genesisPath := filepath.Join(home, "genesis.json")
	require.NoError(t, os.WriteFile(genesisPath, []byte(genesis), 0600))

	out := mustSwapd(t, home, "init", genesisPath)
	assert.Contains(t, out, "swap-local initialized at height 1")
	_, err = swapd(t, home, "init", genesisPath)
	assert.Error(t, err)

	out = mustSwapd(t, home, "make-offer", "--key", "maker",
		"--mint-a", mintA, "--mint-b", mintB, "--id", "1", "--offered", "100", "--wanted", "50")
	assert.Contains(t, out, "id 1")

	var offers []offer.StoredOffer
	out = mustSwapd(t, home, "offers", "--mint-b", mintB)
	require.NoError(t, json.Unmarshal([]byte(out), &offers))
	require.Len(t, offers, 1)
	assert.Equal(t, uint64(50), offers[0].Offer.WantedAmountB)
	assert.Equal(t, maker, offers[0].Offer.Maker.String())

	var inspection client.Inspection
	out = mustSwapd(t, home, "inspect", "--taker", "taker", "--maker", "maker",
		"--mint-a", mintA, "--mint-b", mintB, "--id", "1")
	require.NoError(t, json.Unmarshal([]byte(out), &inspection))
	assert.True(t, inspection.Open)
	assert.Equal(t, uint64(100), inspection.Vault.Amount)
	assert.Equal(t, uint64(500), inspection.TakerAccountB.Amount)

	mustSwapd(t, home, "take-offer", "--key", "taker", "--maker", maker,
		"--mint-a", mintA, "--mint-b", mintB, "--id", "1")
	_, err = swapd(t, home, "take-offer", "--key", "taker", "--maker", maker,
		"--mint-a", mintA, "--mint-b", mintB, "--id", "1")
	assert.Error(t, err)

	out = mustSwapd(t, home, "inspect", "--taker", taker, "--maker", maker,
		"--mint-a", mintA, "--mint-b", mintB, "--id", "1")
	require.NoError(t, json.Unmarshal([]byte(out), &inspection))
	assert.False(t, inspection.Open)
	assert.Equal(t, uint64(100), inspection.TakerAccountA.Amount)
	assert.Equal(t, uint64(450), inspection.TakerAccountB.Amount)
	assert.Equal(t, uint64(50), inspection.MakerAccountB.Amount)
	assert.False(t, inspection.Vault.Exists)

	out = mustSwapd(t, home, "offers")
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestVersion(t *testing.T) {
	out := mustSwapd(t, t.TempDir(), "version")
	assert.True(t, strings.HasPrefix(out, "v"))
}
