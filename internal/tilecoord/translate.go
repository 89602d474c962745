// Package tilecoord converts between the XYZ addressing used by web map clients
// and the TMS addressing used by MBTiles archives, and projects archive bounds
// into map viewport rectangles.
package tilecoord

import "fmt"

// AbsoluteMaxZoom is the deepest zoom any Translator accepts. 1<<30 still fits
// in a 32-bit int.
const AbsoluteMaxZoom = 30

// XYZ is a tile address where row 0 is the northernmost row.
type XYZ struct {
	Z int
	X int
	Y int
}

// TMS is a tile address where row 0 is the southernmost row.
type TMS struct {
	Z int
	X int
	Y int
}

func (c XYZ) String() string { return fmt.Sprintf("xyz %d/%d/%d", c.Z, c.X, c.Y) }
func (c TMS) String() string { return fmt.Sprintf("tms %d/%d/%d", c.Z, c.X, c.Y) }

// FlipRow maps a row between XYZ and TMS at zoom z. Applying it twice returns
// the original row. The caller guarantees 0 <= z <= AbsoluteMaxZoom.
func FlipRow(z, y int) int {
	return (1 << z) - 1 - y
}

// Translator validates tile addresses against a maximum zoom and converts them
// between the two row conventions.
type Translator struct {
	maxZoom int
}

func NewTranslator(maxZoom int) Translator {
	if maxZoom < 0 || maxZoom > AbsoluteMaxZoom {
		maxZoom = AbsoluteMaxZoom
	}
	return Translator{maxZoom: maxZoom}
}

func (t Translator) MaxZoom() int {
	return t.maxZoom
}

// ToTMS converts an XYZ request into the archive's row convention.
func (t Translator) ToTMS(c XYZ) (TMS, error) {
	if err := t.validate(c.Z, c.X, c.Y); err != nil {
		return TMS{}, err
	}
	return TMS{Z: c.Z, X: c.X, Y: FlipRow(c.Z, c.Y)}, nil
}

// ToXYZ converts an archive address back into the web map convention.
func (t Translator) ToXYZ(c TMS) (XYZ, error) {
	if err := t.validate(c.Z, c.X, c.Y); err != nil {
		return XYZ{}, err
	}
	return XYZ{Z: c.Z, X: c.X, Y: FlipRow(c.Z, c.Y)}, nil
}

func (t Translator) validate(z, x, y int) error {
	if z < 0 || z > t.maxZoom {
		return fmt.Errorf("%w: zoom %d outside [0, %d]", ErrInvalidCoordinate, z, t.maxZoom)
	}
	last := (1 << z) - 1
	if x < 0 || x > last {
		return fmt.Errorf("%w: column %d outside [0, %d] at zoom %d", ErrInvalidCoordinate, x, last, z)
	}
	if y < 0 || y > last {
		return fmt.Errorf("%w: row %d outside [0, %d] at zoom %d", ErrInvalidCoordinate, y, last, z)
	}
	return nil
}
