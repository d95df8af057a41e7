package cart

// ClampPolicy bounds a requested line quantity. The storefront clamps
// silently: requests below the floor are raised to it and requests above the
// stock ceiling are capped, with no error surfaced to the caller.
type ClampPolicy struct {
	Floor int
}

// DefaultClamp is the policy used by the cart: quantities never drop below 1.
var DefaultClamp = ClampPolicy{Floor: 1}

// Apply returns quantity bounded into [Floor, ceiling]. A ceiling below the
// floor collapses the range to the floor.
func (p ClampPolicy) Apply(quantity, ceiling int) int {
	if ceiling < p.Floor {
		ceiling = p.Floor
	}
	if quantity < p.Floor {
		return p.Floor
	}
	if quantity > ceiling {
		return ceiling
	}
	return quantity
}
