package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfferPickDoesNotBlock(t *testing.T) {
	g := &Game{picked: make(chan string, 1)}

	assert.True(t, g.offerPick("first.glb"))
	assert.False(t, g.offerPick("second.glb"), "queue full, dropped instead of blocking")
	assert.Equal(t, "first.glb", <-g.picked)

	assert.True(t, g.offerPick("third.glb"))
}

func TestOnePickerAtATime(t *testing.T) {
	g := &Game{picked: make(chan string, 1)}

	assert.True(t, g.picking.CompareAndSwap(false, true))
	assert.False(t, g.picking.CompareAndSwap(false, true), "second O press while the dialog is open")
}
