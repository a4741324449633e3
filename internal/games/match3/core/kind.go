// Package core provides the match-3 logic core: an immutable grid, run detection
// and the move engine that tracks which swaps are legal.
// This package is UI-agnostic and deterministic.
package core

import "strings"

// Kind identifies the symbol carried by a tile.
// The zero value is KindNone, the empty/invalid sentinel.
type Kind uint8

const (
	KindNone Kind = iota
	KindRed
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindOrange
	KindCount // Sentinel value for iteration
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRed:
		return "red"
	case KindGreen:
		return "green"
	case KindBlue:
		return "blue"
	case KindYellow:
		return "yellow"
	case KindPurple:
		return "purple"
	case KindOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Char returns a single character representation used by board files and ASCII rendering.
func (k Kind) Char() rune {
	switch k {
	case KindRed:
		return 'R'
	case KindGreen:
		return 'G'
	case KindBlue:
		return 'B'
	case KindYellow:
		return 'Y'
	case KindPurple:
		return 'P'
	case KindOrange:
		return 'O'
	default:
		return '.'
	}
}

// Valid reports whether k is a playable kind (not the sentinel).
func (k Kind) Valid() bool {
	return k > KindNone && k < KindCount
}

// ParseKind converts a name or single letter to a Kind.
// "." and "none" parse to KindNone.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case ".", "none", "-":
		return KindNone, true
	case "red", "r":
		return KindRed, true
	case "green", "g":
		return KindGreen, true
	case "blue", "b":
		return KindBlue, true
	case "yellow", "y":
		return KindYellow, true
	case "purple", "p":
		return KindPurple, true
	case "orange", "o":
		return KindOrange, true
	default:
		return KindNone, false
	}
}

// AllKinds returns every playable kind.
func AllKinds() []Kind {
	return Kinds(int(KindCount) - 1)
}

// Kinds returns the first n playable kinds, clamped to the available set.
func Kinds(n int) []Kind {
	maxKinds := int(KindCount) - 1
	if n > maxKinds {
		n = maxKinds
	}
	if n < 0 {
		n = 0
	}
	kinds := make([]Kind, n)
	for i := range kinds {
		kinds[i] = Kind(i + 1)
	}
	return kinds
}
