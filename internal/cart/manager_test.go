package cart_test

import (
	"testing"

	"tamaravastra/internal/cart"

	"github.com/stretchr/testify/assert"
)

func TestManager_SameSessionSameCart(t *testing.T) {
	m := cart.NewManager("")

	a := m.Open("session-a")
	assert.NoError(t, a.Add("saree-1", "Silk Saree", price(12500), "img-1", "Red", 5))

	again := m.Open("session-a")
	assert.Same(t, a, again)
	assert.Equal(t, 1, again.TotalItems())
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := cart.NewManager("")

	a := m.Open("session-a")
	assert.NoError(t, a.Add("saree-1", "Silk Saree", price(12500), "img-1", "Red", 5))

	b := m.Open("session-b")
	assert.Empty(t, b.Lines())
}

func TestManager_LoadsPersistedCart(t *testing.T) {
	dir := t.TempDir()

	first := cart.NewManager(dir)
	c := first.Open("session-a")
	assert.NoError(t, c.Add("saree-1", "Silk Saree", price(12500), "img-1", "Red", 5))

	// A fresh manager simulates a process restart.
	second := cart.NewManager(dir)
	reloaded := second.Open("session-a")
	assert.Len(t, reloaded.Lines(), 1)
	assert.Equal(t, "saree-1", reloaded.Lines()[0].ProductID)
}
