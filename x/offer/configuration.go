package offer

import (
	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/gconf"
)

const confPkg = "offer"

// DefaultProgramID is the program id of the public deployment.
var DefaultProgramID = solana.MustPublicKeyFromBase58("HezVxzdFxE8hfLJGp24nLQ31M6jjzJD8Uyj1QCxJGJ45")

// Configuration names the program that owns every offer address.
type Configuration struct {
	ProgramID swapper.Address `json:"program_id"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return errors.Wrap(swapper.ValidateAddress(c.ProgramID), "program id")
}

func (c *Configuration) Marshal() ([]byte, error) {
	return append([]byte(nil), c.ProgramID[:]...), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	if len(raw) != len(c.ProgramID) {
		return errors.Wrapf(errors.ErrInvalidInput, "program id size %d", len(raw))
	}
	copy(c.ProgramID[:], raw)
	return nil
}

// SaveConfiguration stores the offer configuration.
func SaveConfiguration(db gconf.Store, c Configuration) error {
	return gconf.Save(db, confPkg, &c)
}

// LoadProgramID returns the configured program id.
func LoadProgramID(db gconf.ReadStore) (swapper.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return swapper.Address{}, errors.Wrap(err, "load offer configuration")
	}
	return conf.ProgramID, nil
}

// Initializer loads the offer configuration from the genesis file.
type Initializer struct{}

var _ swapper.Initializer = (*Initializer)(nil)

// FromGenesis stores the "conf"/"offer" section of the genesis document.
func (Initializer) FromGenesis(opts swapper.Options, db swapper.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confPkg, &conf)
}
