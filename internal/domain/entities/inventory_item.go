package entities

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const EntityInventoryItem = "inventory_item"

type Category string

const (
	CategoryParts       Category = "parts"
	CategoryTools       Category = "tools"
	CategoryAccessories Category = "accessories"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryParts, CategoryTools, CategoryAccessories, CategoryOther:
		return true
	}
	return false
}

const DefaultReorderThreshold = 1

const (
	// MaxStockMovement bounds one reservation, release, initial stock or the
	// total quantity of an item across a quotation's lines.
	MaxStockMovement = 1_000_000
	// MaxStock is the highest stock count an item may hold.
	MaxStock = 1_000_000_000
)

type InventoryItem struct {
	ID               string
	Name             string
	Description      string
	Category         Category
	UnitPrice        decimal.Decimal
	Stock            int
	ReorderThreshold int
	Active           bool
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemDetails are the admin-editable catalog fields. Stock is not among
// them; it only moves through the ledger.
type ItemDetails struct {
	Name             string
	Description      string
	Category         Category
	UnitPrice        decimal.Decimal
	ReorderThreshold *int
}

func (d *ItemDetails) Normalize() error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if d.Category == "" {
		d.Category = CategoryParts
	}
	if n := utf8.RuneCountInString(d.Name); n < 2 || n > 100 {
		return NewValidationError("name", "must be between 2 and 100 characters")
	}
	if utf8.RuneCountInString(d.Description) > 500 {
		return NewValidationError("description", "must not exceed 500 characters")
	}
	if !d.Category.Valid() {
		return NewValidationError("category", "must be parts, tools, accessories or other")
	}
	if d.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "must not be negative")
	}
	if d.ReorderThreshold != nil && *d.ReorderThreshold < 0 {
		return NewValidationError("reorder_threshold", "must not be negative")
	}
	return nil
}

func NewInventoryItem(id string, d ItemDetails, initialStock int, now time.Time) (InventoryItem, error) {
	if err := d.Normalize(); err != nil {
		return InventoryItem{}, err
	}
	if initialStock < 0 || initialStock > MaxStockMovement {
		return InventoryItem{}, NewValidationError("stock", "must be between 0 and 1000000")
	}
	threshold := DefaultReorderThreshold
	if d.ReorderThreshold != nil {
		threshold = *d.ReorderThreshold
	}
	return InventoryItem{
		ID:               id,
		Name:             d.Name,
		Description:      d.Description,
		Category:         d.Category,
		UnitPrice:        d.UnitPrice,
		Stock:            initialStock,
		ReorderThreshold: threshold,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func (i InventoryItem) Exists() bool {
	return i.ID != ""
}

func (i InventoryItem) LowStock() bool {
	return i.Stock <= i.ReorderThreshold
}

// Available reports whether qty units can be taken out of stock.
func (i InventoryItem) Available(qty int) bool {
	return i.Stock >= qty
}

// ApplyStock adds delta to the stock count. A negative delta larger than the
// current stock fails with InsufficientStockError, a positive one that would
// lift stock above MaxStock fails with ValidationError. Either way i is left
// unchanged.
func (i *InventoryItem) ApplyStock(delta int) error {
	if delta < 0 && (delta == math.MinInt || !i.Available(-delta)) {
		return &InsufficientStockError{ItemID: i.ID, ItemName: i.Name, Requested: requested(delta), Available: i.Stock}
	}
	if delta > 0 && i.Stock > MaxStock-delta {
		return StockCeilingError(i.ID)
	}
	i.Stock += delta
	return nil
}

// StockCeilingError reports a release that would lift itemID above MaxStock.
func StockCeilingError(itemID string) error {
	return NewValidationError("quantity", fmt.Sprintf("would raise stock of %s above %d", itemID, MaxStock))
}

func requested(delta int) int {
	if delta == math.MinInt {
		return math.MaxInt
	}
	return -delta
}

// addQuantity sums a and b, clamping at the int limits instead of wrapping.
func addQuantity(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func (i *InventoryItem) Update(d ItemDetails, at time.Time) error {
	if !i.Active {
		return &TransitionError{Entity: EntityInventoryItem, State: "inactive", Event: "update"}
	}
	if err := d.Normalize(); err != nil {
		return err
	}
	i.Name = d.Name
	i.Description = d.Description
	i.Category = d.Category
	i.UnitPrice = d.UnitPrice
	if d.ReorderThreshold != nil {
		i.ReorderThreshold = *d.ReorderThreshold
	}
	i.UpdatedAt = at
	return nil
}

func (i *InventoryItem) Deactivate(at time.Time) error {
	if !i.Active {
		return &TransitionError{Entity: EntityInventoryItem, State: "inactive", Event: "delete"}
	}
	i.Active = false
	i.UpdatedAt = at
	return nil
}

// InventoryFilter narrows catalog listings.
type InventoryFilter struct {
	IncludeInactive bool
	LowStockOnly    bool
	Category        Category
}

func (f InventoryFilter) Matches(i InventoryItem) bool {
	if !f.IncludeInactive && !i.Active {
		return false
	}
	if f.LowStockOnly && !i.LowStock() {
		return false
	}
	if f.Category != "" && i.Category != f.Category {
		return false
	}
	return true
}
