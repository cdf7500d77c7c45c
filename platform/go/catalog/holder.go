package catalog

import "sync/atomic"

// Holder publishes the current snapshot. Readers never block; reloads swap the pointer.
type Holder struct {
	current atomic.Pointer[Catalog]
}

func NewHolder(c *Catalog) *Holder {
	if c == nil {
		panic("catalog is required")
	}
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap installs c and returns the previous snapshot.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}
