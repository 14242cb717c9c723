/*
Package orm provides a thin typed layer over a KVStore.

Each ModelBucket owns a name and stores its models under the
"<name>:" key prefix, serialized with their own Marshal method.
Buckets never overlap as long as the names are unique, which is
enforced with a panic at construction time.
*/
package orm
