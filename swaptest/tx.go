package swaptest

import (
	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// Tx is a mock transaction carrying a single message.
type Tx struct {
	Msg swapper.Msg
	Err error
}

var _ swapper.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (swapper.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "no message")
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "mock transaction cannot be unmarshaled")
}

// Msg is a mock message with a configurable path.
type Msg struct {
	RoutePath string
	Err       error
}

var _ swapper.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return []byte(m.RoutePath), nil
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.RoutePath = string(raw)
	return nil
}
