package gconf

import (
	"encoding/json"
	"testing"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
	"github.com/tokenswap/swapper/store"
	"github.com/tokenswap/swapper/swaptest/assert"
)

type testConf struct {
	Limit uint8 `json:"limit"`
}

func (c *testConf) Marshal() ([]byte, error) {
	return []byte{c.Limit}, nil
}

func (c *testConf) Unmarshal(raw []byte) error {
	if len(raw) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "size")
	}
	c.Limit = raw[0]
	return nil
}

func (c *testConf) Validate() error {
	if c.Limit == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "limit")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got testConf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "demo", &got))
	assert.IsErr(t, errors.ErrInvalidInput, Save(db, "demo", &testConf{}))

	assert.Nil(t, Save(db, "demo", &testConf{Limit: 9}))
	assert.Nil(t, Load(db, "demo", &got))
	assert.Equal(t, uint8(9), got.Limit)

	raw, err := db.Get([]byte("_c:demo"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{9}, raw)
}

func TestInitConfig(t *testing.T) {
	genesis := `{"conf": {"demo": {"limit": 4}, "broken": {"limit": 0}}}`
	var opts swapper.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var conf testConf
	assert.Nil(t, InitConfig(db, opts, "demo", &conf))
	var loaded testConf
	assert.Nil(t, Load(db, "demo", &loaded))
	assert.Equal(t, uint8(4), loaded.Limit)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "missing", &testConf{}))
	assert.IsErr(t, errors.ErrInvalidInput, InitConfig(db, opts, "broken", &testConf{}))
}
