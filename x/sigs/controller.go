package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and increments
// the sequence of every signer.
//
// returns list of signer addresses (possibly empty),
// or error if any signature is invalid
func VerifyTxSignatures(db swapper.KVStore, tx SignedTx, chainID string) ([]swapper.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}

	sigs := tx.GetSignatures()
	signers := make([]swapper.Address, 0, len(sigs))
	for _, sig := range sigs {
		if err := VerifySignature(db, sig, bz, chainID); err != nil {
			return nil, err
		}
		signers = append(signers, sig.Pubkey)
	}
	return signers, nil
}

// VerifySignature checks one signature against signBytes,
// check chain and updates the signer sequence in the store
func VerifySignature(db swapper.KVStore, sig *StdSignature, signBytes []byte, chainID string) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return err
	}
	if !sig.Signature.Verify(sig.Pubkey, toSign) {
		return errors.Wrapf(errors.ErrUnauthorized, "invalid signature by %s", sig.Pubkey)
	}

	user, err := loadUser(db, sig.Pubkey)
	if err != nil {
		return err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return errors.Wrapf(err, "signer %s", sig.Pubkey)
	}
	return userBucket.Put(db, sig.Pubkey[:], user)
}

/*
BuildSignBytes combines all info on the actual tx before signing

We use the following format:

version | len(chainID) | chainID      | sequence          | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | serialized message

This is then prehashed with sha512 before fed into
the public key signing/verification step
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !swapper.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignTx creates a signature for the given tx, carrying the current
// sequence of the signer
func SignTx(signer solana.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(bz, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Sequence:  seq,
		Signature: sig,
	}, nil
}
