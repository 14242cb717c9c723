package app

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/x/offer"
	"github.com/tokenswap/swapper/x/sigs"
)

// Tx is the envelope submitted to the ledger: the signatures followed by
// the instruction they sign.
//
//   count(1) | count * (pubkey(32) | sequence(8) | signature(64)) | msg
//
// sequence is little endian. msg starts with the 8 byte instruction discriminator, which selects
// the message type on decoding.
type Tx struct {
	Msg        swapper.Msg
	Signatures []*sigs.StdSignature
}

var _ swapper.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx returns an unsigned transaction carrying msg.
func NewTx(msg swapper.Msg) *Tx {
	return &Tx{Msg: msg}
}

// GetMsg returns the instruction carried by this transaction.
func (tx *Tx) GetMsg() (swapper.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "missing msg")
	}
	return tx.Msg, nil
}

// GetSignBytes returns the serialized instruction. Signatures are not
// part of what is signed.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}

// GetSignatures returns all signatures attached to this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// Sign appends a signature by key, bound to given chain and to the
// current sequence of the key.
func (tx *Tx) Sign(key solana.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// Marshal serializes the transaction envelope.
func (tx *Tx) Marshal() ([]byte, error) {
	if len(tx.Signatures) > math.MaxUint8 {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "too many signatures: %d", len(tx.Signatures))
	}
	msg, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := bin.NewBorshEncoder(&buf)
	if err := enc.WriteUint8(uint8(len(tx.Signatures))); err != nil {
		return nil, err
	}
	for _, s := range tx.Signatures {
		if err := swapper.EncodeAddress(enc, s.Pubkey); err != nil {
			return nil, err
		}
		if err := enc.WriteUint64(uint64(s.Sequence), binary.LittleEndian); err != nil {
			return nil, err
		}
		if err := enc.WriteBytes(s.Signature[:], false); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteBytes(msg, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal loads a transaction envelope. Only instructions known to this
// application can be decoded.
func (tx *Tx) Unmarshal(raw []byte) error {
	dec := bin.NewBorshDecoder(raw)
	n, err := dec.ReadUint8()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	signatures := make([]*sigs.StdSignature, 0, n)
	for i := 0; i < int(n); i++ {
		pubkey, err := swapper.DecodeAddress(dec)
		if err != nil {
			return errors.Wrapf(err, "signature #%d", i)
		}
		seq, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "signature #%d: %s", i, err)
		}
		sig, err := dec.ReadNBytes(len(solana.Signature{}))
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidInput, "signature #%d: %s", i, err)
		}
		s := &sigs.StdSignature{Pubkey: pubkey, Sequence: int64(seq)}
		copy(s.Signature[:], sig)
		signatures = append(signatures, s)
	}

	msg, err := decodeMsg(raw[len(raw)-dec.Remaining():])
	if err != nil {
		return err
	}
	tx.Msg = msg
	tx.Signatures = signatures
	return nil
}

// TxDecoder parses raw bytes into a Tx.
func TxDecoder(raw []byte) (swapper.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, err
	}
	return &tx, nil
}

type msgFactory func() swapper.Msg

// msgTypes maps an instruction discriminator to the message it decodes to.
var msgTypes = registerMsgs(
	func() swapper.Msg { return &offer.CreateOfferMsg{} },
	func() swapper.Msg { return &offer.FulfillOfferMsg{} },
)

// registerMsgs indexes the factories by the discriminator their zero
// message serializes with.
func registerMsgs(factories ...msgFactory) map[[swapper.DiscriminatorSize]byte]msgFactory {
	types := make(map[[swapper.DiscriminatorSize]byte]msgFactory, len(factories))
	for _, fn := range factories {
		raw, err := fn().Marshal()
		if err != nil || len(raw) < swapper.DiscriminatorSize {
			panic(fmt.Sprintf("cannot register %T: %v", fn(), err))
		}
		var d [swapper.DiscriminatorSize]byte
		copy(d[:], raw)
		if _, ok := types[d]; ok {
			panic(fmt.Sprintf("discriminator %x registered twice", d))
		}
		types[d] = fn
	}
	return types
}

func decodeMsg(raw []byte) (swapper.Msg, error) {
	if len(raw) < swapper.DiscriminatorSize {
		return nil, errors.Wrap(errors.ErrInvalidInput, "missing msg")
	}
	var d [swapper.DiscriminatorSize]byte
	copy(d[:], raw)
	fn, ok := msgTypes[d]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown instruction %x", d)
	}
	msg := fn()
	if err := msg.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "decode %s", msg.Path())
	}
	return msg, nil
}
