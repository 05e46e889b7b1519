package mangrove

import (
	"fmt"

	"mangrovesim/internal/world"
)

// Variant selects one of four rotated canopy profiles.
type Variant int

const (
	Variant0 Variant = iota
	Variant1
	Variant2
	Variant3
	variantCount
)

func (v Variant) String() string {
	return fmt.Sprintf("variant%d", int(v))
}

// span is an inclusive integer range; lo > hi is empty.
type span struct{ lo, hi int }

func (s span) contains(v int) bool {
	return v >= s.lo && v <= s.hi
}

// window bounds offsets from the trunk top (logX, logY, maxLogZ).
type window struct {
	dx, dy, dz span
}

func (w window) contains(rel world.BlockCoord) bool {
	return w.dx.contains(rel.X) && w.dy.contains(rel.Y) && w.dz.contains(rel.Z)
}

type envelope struct {
	canopy    window
	core      window
	propagule window
	vine      window
}

var envelopes = [variantCount]envelope{
	Variant0: {
		canopy:    window{dx: span{-1, 2}, dy: span{-2, 1}, dz: span{-3, 1}},
		core:      window{dx: span{0, 1}, dy: span{-1, 0}, dz: span{0, 1}},
		propagule: window{dx: span{-1, 2}, dy: span{-2, 1}, dz: span{-4, 0}},
		vine:      window{dx: span{-2, 3}, dy: span{-3, 2}, dz: span{-4, 0}},
	},
	Variant1: {
		canopy: window{dx: span{-2, 1}, dy: span{-1, 2}, dz: span{-1, 1}},
		// No layer is ever solid: every variant-1 leaf is a ragged edge.
		core:      window{dx: span{-1, 0}, dy: span{0, 1}, dz: span{1, 0}},
		propagule: window{dx: span{-2, 1}, dy: span{-1, 2}, dz: span{-2, 0}},
		vine:      window{dx: span{-3, 2}, dy: span{-2, 3}, dz: span{-2, 0}},
	},
	Variant2: {
		canopy:    window{dx: span{-1, 3}, dy: span{-3, 1}, dz: span{-2, 1}},
		core:      window{dx: span{0, 2}, dy: span{-2, 0}, dz: span{1, 1}},
		propagule: window{dx: span{-1, 3}, dy: span{-3, 1}, dz: span{-3, 0}},
		vine:      window{dx: span{-2, 4}, dy: span{-4, 2}, dz: span{-3, 0}},
	},
	Variant3: {
		canopy:    window{dx: span{-3, 1}, dy: span{-1, 3}, dz: span{-3, 1}},
		core:      window{dx: span{-2, 0}, dy: span{0, 2}, dz: span{0, 2}},
		propagule: window{dx: span{-3, 1}, dy: span{-1, 3}, dz: span{-4, 1}},
		vine:      window{dx: span{-4, 2}, dy: span{-2, 4}, dz: span{-4, 1}},
	},
}

func (v Variant) envelope() envelope {
	if v < 0 || v >= variantCount {
		return envelopes[Variant0]
	}
	return envelopes[v]
}

// Canopy reports whether rel, an offset from the trunk top, gets leaves.
// Core cells always do; the rest of the envelope loses one cell in twelve.
func (v Variant) Canopy(rel world.BlockCoord, rng Source) bool {
	env := v.envelope()
	if !env.canopy.contains(rel) {
		return false
	}
	if env.core.contains(rel) {
		return true
	}
	return !raggedEdgeChance.roll(rng)
}

// PropaguleSite reports whether rel hosts a hanging pod, one time in ten
// inside the variant's pod window.
func (v Variant) PropaguleSite(rel world.BlockCoord, rng Source) bool {
	if !v.envelope().propagule.contains(rel) {
		return false
	}
	return podChance.roll(rng)
}

// VineEnvelope reports whether vines may be attempted at rel.
func (v Variant) VineEnvelope(rel world.BlockCoord) bool {
	return v.envelope().vine.contains(rel)
}
