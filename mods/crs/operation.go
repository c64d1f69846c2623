package crs

import (
	"fmt"
	"strings"
)

// Operation is a geometric operation requesting a projection.
type Operation string

const (
	OpArea         Operation = "AREA"
	OpBuffer       Operation = "BUFFER"
	OpOverlay      Operation = "OVERLAY"
	OpClip         Operation = "CLIP"
	OpDissolve     Operation = "DISSOLVE"
	OpSimplify     Operation = "SIMPLIFY"
	OpSjoin        Operation = "SJOIN"
	OpSjoinNearest Operation = "SJOIN_NEAREST"
)

// Property is the distortion characteristic a projection must preserve
// for a given operation.
type Property string

const (
	Conformal   Property = "CONFORMAL"
	EqualArea   Property = "EQUAL_AREA"
	Equidistant Property = "EQUIDISTANT"
	Compromise  Property = "COMPROMISE"
)

var operationProperty = map[Operation]Property{
	OpArea:         EqualArea,
	OpBuffer:       Conformal,
	OpOverlay:      EqualArea,
	OpClip:         Conformal,
	OpDissolve:     EqualArea,
	OpSimplify:     Compromise,
	OpSjoin:        Conformal,
	OpSjoinNearest: Equidistant,
}

// RequiredProperty resolves the projection property an operation needs.
// Unknown operations are treated as COMPROMISE.
func RequiredProperty(op Operation) Property {
	if p, ok := operationProperty[op]; ok {
		return p
	}
	return Compromise
}

func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := operationProperty[op]; !ok {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}

func ParseProperty(s string) (Property, error) {
	switch p := Property(strings.ToUpper(strings.TrimSpace(s))); p {
	case Conformal, EqualArea, Equidistant, Compromise:
		return p, nil
	}
	return "", fmt.Errorf("unknown projection property %q", s)
}
