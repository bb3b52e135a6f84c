package model

import (
	"regexp"
	"strings"

	"github.com/motifminer/motifminer/errors"
)

// StructureIDPattern matches valid four-character structure identifiers
// (PDB style: digit 1-9 followed by three alphanumerics).
var StructureIDPattern = regexp.MustCompile(`^[1-9][A-Za-z0-9]{3}$`)

// DataPointIdentifier uniquely identifies a data point by the structure it
// originates from and the chain within that structure.
type DataPointIdentifier struct {
	StructureID string
	ChainID     string
}

// NewDataPointIdentifier validates the structure identifier and returns the
// composite identifier.
func NewDataPointIdentifier(structureID, chainID string) (DataPointIdentifier, error) {
	if !StructureIDPattern.MatchString(structureID) {
		return DataPointIdentifier{}, errors.Newf("%q is not a valid structure identifier", structureID)
	}
	return DataPointIdentifier{StructureID: structureID, ChainID: chainID}, nil
}

// Compare orders identifiers by structure id, then chain id.
func (id DataPointIdentifier) Compare(other DataPointIdentifier) int {
	if c := strings.Compare(id.StructureID, other.StructureID); c != 0 {
		return c
	}
	return strings.Compare(id.ChainID, other.ChainID)
}

func (id DataPointIdentifier) String() string {
	return id.StructureID + "_" + id.ChainID
}
