/*
Package kv is a key-value store with nested transactions layered over a storage.Store.

With no transaction active, writes go straight to the store. Begin pushes a layer which holds
the pending sets and deletes (tombstones) of that nesting level; a nested layer starts as a copy
of the layer below it, so only the top layer is consulted on reads. Rollback discards the top
layer. Commit applies the top layer to the store and discards every layer: there is no
per-level commit.

A DB has a single owner and does no locking.
*/
package kv
