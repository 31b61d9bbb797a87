package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_NewerTicketSupersedes(t *testing.T) {
	g := NewGuard()

	first := g.Begin(FetchSlots)
	second := g.Begin(FetchSlots)

	assert.False(t, g.Valid(first))
	assert.True(t, g.Valid(second))
}

func TestGuard_KindsAreIndependent(t *testing.T) {
	g := NewGuard()

	slots := g.Begin(FetchSlots)
	subs := g.Begin(FetchSubscriptions)
	g.Invalidate(FetchSubscriptions)

	assert.True(t, g.Valid(slots))
	assert.False(t, g.Valid(subs))
}

func TestGuard_Close(t *testing.T) {
	g := NewGuard()
	ticket := g.Begin(FetchSlots)

	g.Close()

	assert.False(t, g.Valid(ticket))
	assert.False(t, g.Valid(g.Begin(FetchSlots)))
}
