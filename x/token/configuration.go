package token

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/gconf"
)

const (
	confPkg = "token"
	// storageOverhead is charged on top of every record's own size
	storageOverhead = 128
)

// Configuration holds the price of storage.
type Configuration struct {
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year"`
	ExemptionYears      uint8  `json:"exemption_years"`
}

// DefaultConfiguration matches the storage price of public networks.
var DefaultConfiguration = Configuration{
	LamportsPerByteYear: 3480,
	ExemptionYears:      2,
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if c.LamportsPerByteYear == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "lamports per byte year")
	}
	if c.ExemptionYears == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "exemption years")
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint64(c.LamportsPerByteYear, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(c.ExemptionYears); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	dec := bin.NewBorshDecoder(raw)
	perByte, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	years, err := dec.ReadUint8()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*c = Configuration{LamportsPerByteYear: perByte, ExemptionYears: years}
	return nil
}

// RentExempt returns the reservation a record of the given size requires.
func (c Configuration) RentExempt(size int) (uint64, error) {
	if size < 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "size %d", size)
	}
	total := uint64(storageOverhead + size)
	perYear := total * c.LamportsPerByteYear
	if perYear/total != c.LamportsPerByteYear {
		return 0, errors.Wrapf(errors.ErrOverflow, "rent for %d bytes", size)
	}
	rent := perYear * uint64(c.ExemptionYears)
	if perYear != 0 && rent/perYear != uint64(c.ExemptionYears) {
		return 0, errors.Wrapf(errors.ErrOverflow, "rent for %d bytes", size)
	}
	return rent, nil
}

// SaveConfiguration stores the token configuration.
func SaveConfiguration(db gconf.Store, c Configuration) error {
	return gconf.Save(db, confPkg, &c)
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return conf, errors.Wrap(err, "load token configuration")
	}
	return conf, nil
}
