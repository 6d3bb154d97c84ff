package model

import (
	"fmt"
	"math"
	"sync/atomic"
)

// ProductID is the permanent identifier of a product.
// Identifiers are never reused.
type ProductID = uint64

// EmptySlot marks a slot whose product has been removed but not yet replaced.
// It is never handed out by an IDAllocator.
const EmptySlot ProductID = math.MaxUint64

// Product is a catalog entry. Its identity and content never change after
// construction; only the availability flag can be cleared.
type Product struct {
	id          ProductID
	name        string
	description string
	retired     atomic.Bool
}

// NewProduct creates an available product.
func NewProduct(id ProductID, name, description string) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
	}
}

// ID returns the product identifier.
func (p *Product) ID() ProductID { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// Available reports whether the product is still part of the catalog.
func (p *Product) Available() bool { return !p.retired.Load() }

// Deactivate marks the product as removed from the catalog.
// In-flight holders may keep using the value; searches skip it.
func (p *Product) Deactivate() { p.retired.Store(true) }

// String returns a string representation of the Product.
func (p *Product) String() string {
	return fmt.Sprintf("Product(%d:%q)", p.id, p.name)
}
