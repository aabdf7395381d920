package collection

import "github.com/nanatgrail/prodigyspace/internal/codec"

// Meta is embedded in every stored entity. The store owns all three fields:
// ID and CreatedAt are fixed at creation and UpdatedAt moves on every
// successful mutation.
type Meta struct {
	ID        string          `json:"id"`
	CreatedAt codec.Timestamp `json:"createdAt"`
	UpdatedAt codec.Timestamp `json:"updatedAt"`
}

// Base gives the store access to the embedded Meta.
func (m *Meta) Base() *Meta { return m }

// Entity is satisfied by *T when T embeds Meta.
type Entity[T any] interface {
	*T
	Base() *Meta
}
