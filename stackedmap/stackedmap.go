// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap provides a map with save-restore/snapshot-revert semantics.
package stackedmap

// StackedMap maintains maps in a stack.
// Each map inherits key/value of the map at the lower level.
type StackedMap struct {
	src            MapGetter
	mapStack       []*level
	keyRevisionMap map[any]*revisions
}

type level struct {
	kvs     map[any]any
	journal []*JournalEntry
}

// JournalEntry entry of journal.
type JournalEntry struct {
	Key   any
	Value any
}

// MapGetter defines the source of data underneath the stack.
type MapGetter func(key any) (value any, exist bool, err error)

type revisions []int

func (r *revisions) push(rev int) { *r = append(*r, rev) }
func (r *revisions) pop()         { *r = (*r)[:len(*r)-1] }
func (r revisions) top() int      { return r[len(r)-1] }

// New create an instance of StackedMap.
// src acts as the source of data.
func New(src MapGetter) *StackedMap {
	return &StackedMap{
		src:            src,
		keyRevisionMap: make(map[any]*revisions),
	}
}

// Depth returns depth of stack.
func (sm *StackedMap) Depth() int {
	return len(sm.mapStack)
}

// Push pushes a new map on stack.
// It returns stack depth before push.
func (sm *StackedMap) Push() int {
	sm.mapStack = append(sm.mapStack, &level{kvs: make(map[any]any)})
	return len(sm.mapStack) - 1
}

// Pop pops the map at top of stack.
// It reverts all Put operations since the last Push.
func (sm *StackedMap) Pop() {
	top := sm.mapStack[len(sm.mapStack)-1]
	for key := range top.kvs {
		revs := sm.keyRevisionMap[key]
		revs.pop()
		if len(*revs) == 0 {
			delete(sm.keyRevisionMap, key)
		}
	}
	sm.mapStack = sm.mapStack[:len(sm.mapStack)-1]
}

// PopTo pops maps until stack depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	for len(sm.mapStack) > depth {
		sm.Pop()
	}
}

// Get gets value for given key.
// The second return value indicates whether the given key is found.
func (sm *StackedMap) Get(key any) (any, bool, error) {
	if revs, ok := sm.keyRevisionMap[key]; ok {
		if v, ok := sm.mapStack[revs.top()].kvs[key]; ok {
			return v, true, nil
		}
	}
	return sm.src(key)
}

// Put puts key value into the map at stack top.
// It will panic if the stack is empty.
func (sm *StackedMap) Put(key, value any) {
	top := sm.mapStack[len(sm.mapStack)-1]
	top.kvs[key] = value
	top.journal = append(top.journal, &JournalEntry{Key: key, Value: value})

	// record key revision for fast access
	rev := len(sm.mapStack) - 1
	if revs, ok := sm.keyRevisionMap[key]; ok {
		revs.push(rev)
	} else {
		sm.keyRevisionMap[key] = &revisions{rev}
	}
}

// Journal iterates the journal of all Put operations.
// The iteration stops if cb returns false.
func (sm *StackedMap) Journal(cb func(key, value any) bool) {
	for _, lvl := range sm.mapStack {
		for _, entry := range lvl.journal {
			if !cb(entry.Key, entry.Value) {
				return
			}
		}
	}
}
