package parser

import (
	"fmt"
	"strings"

	"showdown-tracker/game"
)

// Ident is a creature reference as it appears in the log, e.g. "p1a: Pikachu".
type Ident struct {
	Slot    game.Slot
	Species string
}

func (i Ident) Key() game.Key {
	return game.Key{Side: i.Slot.Side(), Species: i.Species}
}

func (i Ident) String() string {
	return string(i.Slot) + ": " + i.Species
}

// NormalizeSlot turns a side code ("p1") or a slot code ("p1a") into a slot
// code, defaulting the position letter to "a".
func NormalizeSlot(raw string) (game.Slot, error) {
	raw = strings.TrimSpace(raw)
	switch len(raw) {
	case 2:
		raw += "a"
	case 3:
	default:
		return "", fmt.Errorf("%w: %q has length %d", ErrMalformedIdentifier, raw, len(raw))
	}
	if _, ok := game.ParseSide(raw[:2]); !ok {
		return "", fmt.Errorf("%w: unknown side in %q", ErrMalformedIdentifier, raw)
	}
	return game.Slot(raw), nil
}

// ParseIdent splits a "side:species" field on its first colon.
func ParseIdent(field string) (Ident, error) {
	side, species, ok := strings.Cut(field, ":")
	if !ok {
		return Ident{}, fmt.Errorf("%w: %q has no side separator", ErrMalformedIdentifier, field)
	}
	species = strings.TrimSpace(species)
	if species == "" {
		return Ident{}, fmt.Errorf("%w: %q has no species", ErrMalformedIdentifier, field)
	}
	slot, err := NormalizeSlot(side)
	if err != nil {
		return Ident{}, err
	}
	return Ident{Slot: slot, Species: species}, nil
}
