package core

import "fmt"

// Precision is the floating-point width carried by a Model. It drives two
// coercions downstream in the substitution engine: which literal suffix a
// numeric constant gets, and which overload of a math function (cos vs
// cosf, ...) a call resolves to.
type Precision uint8

const (
	// PrecisionSingle selects 32-bit float ("float" / "f" suffix).
	PrecisionSingle Precision = iota
	// PrecisionDouble selects 64-bit float ("double", no suffix).
	PrecisionDouble
	// PrecisionExtended selects the widest available float type ("long double").
	PrecisionExtended
)

// String renders the C/C++ type name a backend would emit for this precision.
func (p Precision) String() string {
	switch p {
	case PrecisionSingle:
		return "float"
	case PrecisionDouble:
		return "double"
	case PrecisionExtended:
		return "long double"
	default:
		return fmt.Sprintf("Precision(%d)", uint8(p))
	}
}

// LiteralSuffix returns the suffix ensure_ftype appends to bare floating
// literals for this precision ("f" for single, "" otherwise).
func (p Precision) LiteralSuffix() string {
	if p == PrecisionSingle {
		return "f"
	}
	return ""
}

// IsValid reports whether p is one of the three known precision tags.
func (p Precision) IsValid() bool {
	return p == PrecisionSingle || p == PrecisionDouble || p == PrecisionExtended
}
