package storage

import (
	"github.com/google/btree"
)

type btreeStore struct {
	tree *btree.BTree
}

type btreeItem struct {
	key string
	val string
}

func (bi btreeItem) Less(item btree.Item) bool {
	return bi.key < item.(btreeItem).key
}

func NewBTreeStore() Store {
	return &btreeStore{
		tree: btree.New(16),
	}
}

func (bst *btreeStore) Get(key string) (string, bool) {
	item := bst.tree.Get(btreeItem{key: key})
	if item == nil {
		return "", false
	}
	return item.(btreeItem).val, true
}

func (bst *btreeStore) Set(key, val string) {
	bst.tree.ReplaceOrInsert(btreeItem{key: key, val: val})
}

func (bst *btreeStore) Delete(key string) bool {
	return bst.tree.Delete(btreeItem{key: key}) != nil
}

func (bst *btreeStore) CountEqual(val string) int {
	var cnt int
	bst.tree.Ascend(
		func(item btree.Item) bool {
			if item.(btreeItem).val == val {
				cnt += 1
			}
			return true
		})
	return cnt
}

func (bst *btreeStore) Ascend(fn func(key, val string) bool) {
	bst.tree.Ascend(
		func(item btree.Item) bool {
			bi := item.(btreeItem)
			return fn(bi.key, bi.val)
		})
}

func (bst *btreeStore) Len() int {
	return bst.tree.Len()
}

func (bst *btreeStore) Close() error {
	bst.tree.Clear(false)
	return nil
}
