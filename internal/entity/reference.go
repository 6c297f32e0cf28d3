package entity

import "fmt"

// ID identifies an entity within its owning store. IDs start at 1 and are
// never reused by a store.
type ID uint64

// StoreID identifies an entity store.
type StoreID uint32

// Reference is a non-owning handle to an entity. Resolving it requires an
// existence check against the owning store, so a stale reference resolves
// to "not found".
type Reference struct {
	ID    ID
	Store StoreID
}

// Nowhere is the zero reference. It never resolves.
var Nowhere = Reference{}

// IsZero reports whether the reference is Nowhere.
func (r Reference) IsZero() bool {
	return r.ID == 0
}

// String formats the reference as store:id.
func (r Reference) String() string {
	return fmt.Sprintf("%d:%d", r.Store, r.ID)
}
