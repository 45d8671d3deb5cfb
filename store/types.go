package store

import "github.com/iov-one/multiclique"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = multiclique.ReadOnlyKVStore
	SetDeleter       = multiclique.SetDeleter
	KVStore          = multiclique.KVStore
	Batch            = multiclique.Batch
	Iterator         = multiclique.Iterator
	CacheableKVStore = multiclique.CacheableKVStore
	KVCacheWrap      = multiclique.KVCacheWrap
	CommitKVStore    = multiclique.CommitKVStore
	CommitID         = multiclique.CommitID
	Model            = multiclique.Model
)
