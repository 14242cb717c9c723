package orm

import (
	"fmt"
	"regexp"

	"github.com/tokenswap/swapper"
	"github.com/tokenswap/swapper/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	swapper.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db swapper.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given key exists, ErrNotFound
	// otherwise.
	Has(db swapper.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, overwriting any previous
	// value.
	Put(db swapper.KVStore, key []byte, m Model) error

	// Create saves given model in the database. It returns
	// ErrAddressOccupied if the key is already in use.
	Create(db swapper.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db swapper.KVStore, key []byte) error

	// Iterate calls fn for every stored entity in key order. Iteration
	// stops at the first error returned by fn.
	Iterate(db swapper.ReadOnlyKVStore, fn func(key, raw []byte) error) error
}

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
	usedNames    = make(map[string]struct{})
)

// NewModelBucket returns a ModelBucket storing its entities under the
// given name. Bucket names must be unique within the application.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	if _, ok := usedNames[name]; ok {
		panic(fmt.Sprintf("bucket %q already registered", name))
	}
	usedNames[name] = struct{}{}
	return &modelBucket{prefix: []byte(name + ":")}
}

type modelBucket struct {
	prefix []byte
}

var _ ModelBucket = (*modelBucket)(nil)

// DBKey is the full key as stored in the database
func (mb *modelBucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db swapper.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db swapper.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.DBKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db swapper.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	if err := db.Set(mb.DBKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Create(db swapper.KVStore, key []byte, m Model) error {
	switch err := mb.Has(db, key); {
	case err == nil:
		return errors.Wrapf(errors.ErrAddressOccupied, "%T", m)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db swapper.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.DBKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Iterate(db swapper.ReadOnlyKVStore, fn func(key, raw []byte) error) error {
	it, err := db.Iterator(mb.prefix, prefixEnd(mb.prefix))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	for it.Valid() {
		key := it.Key()[len(mb.prefix):]
		if err := fn(key, it.Value()); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// prefixEnd returns the first key that does not carry the prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
