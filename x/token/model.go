package token

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/orm"
)

const (
	// MintSize is the serialized size of a Mint
	MintSize = 32 + 1 + 8
	// AccountSize is the serialized size of an Account
	AccountSize = 32 + 32 + 8
	// maxDecimals keeps 10^decimals within uint64
	maxDecimals = 19
)

var (
	mintBucket     = orm.NewModelBucket("mint")
	accountBucket  = orm.NewModelBucket("account")
	lamportsBucket = orm.NewModelBucket("lamports")
)

// Mint defines a fungible asset.
type Mint struct {
	// Authority may issue new supply. A zero authority fixes the supply.
	Authority swapper.Address
	Decimals  uint8
	Supply    uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	if m.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInvalidInput, "decimals %d", m.Decimals)
	}
	return nil
}

func (m *Mint) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := swapper.EncodeAddress(enc, m.Authority); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(m.Decimals); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(m.Supply, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Mint) Unmarshal(raw []byte) error {
	if len(raw) != MintSize {
		return errors.Wrapf(errors.ErrInvalidInput, "mint size %d", len(raw))
	}
	dec := bin.NewBorshDecoder(raw)
	authority, err := swapper.DecodeAddress(dec)
	if err != nil {
		return err
	}
	decimals, err := dec.ReadUint8()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	supply, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*m = Mint{Authority: authority, Decimals: decimals, Supply: supply}
	return nil
}

// Account holds a balance of one mint on behalf of its owner.
type Account struct {
	Mint   swapper.Address
	Owner  swapper.Address
	Amount uint64
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := swapper.ValidateAddress(a.Mint); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := swapper.ValidateAddress(a.Owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

func (a *Account) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := swapper.EncodeAddress(enc, a.Mint); err != nil {
		return nil, err
	}
	if err := swapper.EncodeAddress(enc, a.Owner); err != nil {
		return nil, err
	}
	if err := enc.WriteUint64(a.Amount, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) != AccountSize {
		return errors.Wrapf(errors.ErrInvalidInput, "account size %d", len(raw))
	}
	dec := bin.NewBorshDecoder(raw)
	mint, err := swapper.DecodeAddress(dec)
	if err != nil {
		return err
	}
	owner, err := swapper.DecodeAddress(dec)
	if err != nil {
		return err
	}
	amount, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	*a = Account{Mint: mint, Owner: owner, Amount: amount}
	return nil
}

// lamports is the native balance held at an address.
type lamports uint64

var _ orm.Model = (*lamports)(nil)

func (l *lamports) Validate() error {
	return nil
}

func (l *lamports) Marshal() ([]byte, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, uint64(*l))
	return raw, nil
}

func (l *lamports) Unmarshal(raw []byte) error {
	if len(raw) != 8 {
		return errors.Wrapf(errors.ErrInvalidInput, "lamports size %d", len(raw))
	}
	*l = lamports(binary.LittleEndian.Uint64(raw))
	return nil
}
