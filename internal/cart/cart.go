package cart

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
)

// ErrMaxStock is returned by Add when incrementing an existing line would
// exceed its stock ceiling. The cart is left unchanged; the condition is
// informational and callers surface it as a transient notice.
var ErrMaxStock = errors.New("maximum stock reached")

// Line is a single cart entry. Lines are unique per (ProductID, Variant);
// adding the same combination again increments the quantity instead of
// appending a duplicate.
type Line struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageRef    string          `json:"image_ref"`
	Variant     string          `json:"variant"`
	Quantity    int             `json:"quantity"`
	MaxQuantity int             `json:"max_quantity"`
}

// Cart is the shopping cart aggregate for one session. It owns its persisted
// copy exclusively: every mutation writes the full line set through the
// LineStore, best-effort. A store failure is logged and swallowed so that the
// in-memory mutation always succeeds.
type Cart struct {
	lines []Line
	store LineStore
	clamp ClampPolicy
}

// New creates an empty cart backed by store. A nil store disables
// persistence.
func New(store LineStore) *Cart {
	return &Cart{store: store, clamp: DefaultClamp}
}

// Load creates a cart populated from the store's persisted line set. A load
// failure yields an empty cart rather than an error; the persisted copy is a
// convenience, not a source of truth worth failing the session over.
func Load(store LineStore) *Cart {
	c := New(store)
	if store == nil {
		return c
	}
	lines, err := store.Load()
	if err != nil {
		log.Printf("cart: failed to load persisted lines: %v", err)
		return c
	}
	c.lines = lines
	return c
}

// Add puts one unit of the given product variant into the cart. If a line
// with the same (productID, variant) already exists its quantity is
// incremented, unless that would exceed maxQuantity, in which case the cart
// is unchanged and ErrMaxStock is returned.
func (c *Cart) Add(productID, name string, unitPrice decimal.Decimal, imageRef, variant string, maxQuantity int) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Variant == variant {
			if c.lines[i].Quantity+1 > c.lines[i].MaxQuantity {
				return ErrMaxStock
			}
			c.lines[i].Quantity++
			c.persist()
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:   productID,
		Name:        name,
		UnitPrice:   unitPrice,
		ImageRef:    imageRef,
		Variant:     variant,
		Quantity:    1,
		MaxQuantity: maxQuantity,
	})
	c.persist()
	return nil
}

// Remove deletes the line matching (productID, variant). Removing an absent
// line is a no-op, not an error.
func (c *Cart) Remove(productID, variant string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Variant == variant {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity stores the requested quantity for the matching line, clamped
// into [1, MaxQuantity] by the cart's clamp policy. Out-of-range requests are
// not errors. A miss is a no-op.
func (c *Cart) SetQuantity(productID, variant string, quantity int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].Variant == variant {
			c.lines[i].Quantity = c.clamp.Apply(quantity, c.lines[i].MaxQuantity)
			c.persist()
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the current line set.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of all line quantities. Always recomputed.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.lines); err != nil {
		log.Printf("cart: failed to persist lines: %v", err)
	}
}
