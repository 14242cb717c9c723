package store

import "github.com/tokenswap/swapper"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = swapper.ReadOnlyKVStore
type SetDeleter = swapper.SetDeleter
type KVStore = swapper.KVStore
type Batch = swapper.Batch
type Iterator = swapper.Iterator
type CacheableKVStore = swapper.CacheableKVStore
type KVCacheWrap = swapper.KVCacheWrap
type CommitKVStore = swapper.CommitKVStore
type CommitID = swapper.CommitID
