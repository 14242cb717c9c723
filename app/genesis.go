package app

import (
	"encoding/json"
	"os"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// Genesis is the document a chain is initialized from.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState swapper.Options `json:"app_state"`
}

// LoadGenesis reads a genesis document from a JSON file.
func LoadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := os.ReadFile(path)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrNotFound, "genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...swapper.Initializer) swapper.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []swapper.Initializer
}

// FromGenesis passes opts to every initializer in order, aborting at the
// first error.
func (c chainInitializer) FromGenesis(opts swapper.Options, db swapper.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
