package registry

import "github.com/cta-observatory/goeventio/internal/hash"

// TelescopeTable maps telescope ids (as they appear in RunHeader and later
// per-telescope objects) to the dense slot indices used to size columnar
// arrays (trigger bitmasks, per-telescope event arrays). Order matters: slot
// index is the position of the id in the RunHeader's telescope-id list.
type TelescopeTable struct {
	fingerprint uint64
	ids         []int32
	slots       map[int32]int
}

func newTelescopeTable(ids []int32, fp uint64) *TelescopeTable {
	slots := make(map[int32]int, len(ids))
	for i, id := range ids {
		slots[id] = i
	}

	return &TelescopeTable{fingerprint: fp, ids: append([]int32(nil), ids...), slots: slots}
}

func fingerprint(ids []int32) uint64 {
	return hash.TelescopeIDs(ids)
}

// IDs returns the ordered telescope-id list this table was built from.
func (t *TelescopeTable) IDs() []int32 {
	return t.ids
}

// Len returns the number of telescopes in the table.
func (t *TelescopeTable) Len() int {
	return len(t.ids)
}

// SlotIndex reports the slot index of id and whether it is present.
func (t *TelescopeTable) SlotIndex(id int32) (int, bool) {
	idx, ok := t.slots[id]

	return idx, ok
}
