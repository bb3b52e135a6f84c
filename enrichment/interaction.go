package enrichment

import (
	"context"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/geometry"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// InteractionType identifies a kind of non-covalent interaction reported by
// an annotation source.
type InteractionType string

const (
	HalogenBond  InteractionType = "halogen_bond"
	HydrogenBond InteractionType = "hydrogen_bond"
	Hydrophobic  InteractionType = "hydrophobic"
	MetalComplex InteractionType = "metal_complex"
	PiCation     InteractionType = "pi_cation"
	PiStacking   InteractionType = "pi_stacking"
	SaltBridge   InteractionType = "salt_bridge"
	WaterBridge  InteractionType = "water_bridge"
)

// InteractionLabel maps an interaction type to the three-letter item label
// used during mining. Unknown types map to the empty string.
func InteractionLabel(interactionType InteractionType) string {
	switch interactionType {
	case HalogenBond:
		return "hal"
	case HydrogenBond:
		return "hyb"
	case Hydrophobic:
		return "hyp"
	case MetalComplex:
		return "mec"
	case PiCation:
		return "pic"
	case PiStacking:
		return "pis"
	case SaltBridge:
		return "sab"
	case WaterBridge:
		return "wab"
	}
	return ""
}

// ActiveInteractions lists the interaction types considered during
// enrichment.
func ActiveInteractions() []InteractionType {
	return []InteractionType{HydrogenBond, MetalComplex, PiCation, PiStacking, SaltBridge}
}

// Interaction is one interaction reported for a chain, given by its type and
// the coordinates of the interacting partners.
type Interaction struct {
	Type        InteractionType
	Coordinates []r3.Vec
}

// InteractionSource supplies interaction annotations for a chain. A source
// returning ok=false reports that no annotations are available, which is not
// an error.
type InteractionSource interface {
	Interactions(ctx context.Context, identifier model.DataPointIdentifier) (interactions []Interaction, ok bool, err error)
}

// InteractionEnricher adds one pseudo-atom item per reported interaction of
// an active type, labeled after the interaction type and positioned at the
// centroid of the interacting partners.
type InteractionEnricher struct {
	Source InteractionSource
}

func (e *InteractionEnricher) EnrichDataPoint(ctx context.Context, dataPoint *model.DataPoint[string]) error {
	logger.Logger.Infow("enriching data point with interaction information",
		"data_point", dataPoint.Identifier.String())

	interactions, ok, err := e.Source.Interactions(ctx, dataPoint.Identifier)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	active := make(map[InteractionType]bool)
	for _, interactionType := range ActiveInteractions() {
		active[interactionType] = true
	}
	for _, interaction := range interactions {
		if !active[interaction.Type] || len(interaction.Coordinates) == 0 {
			continue
		}
		e.addInteractionItem(interaction, dataPoint)
	}
	return nil
}

func (e *InteractionEnricher) addInteractionItem(interaction Interaction, dataPoint *model.DataPoint[string]) {
	label := InteractionLabel(interaction.Type)
	element := &model.StructuralElement{
		Family: label,
		Chain:  dataPoint.Identifier.ChainID,
		Serial: nextSerial(dataPoint),
		Atoms: []model.Atom{{
			Name:     "CA",
			Position: geometry.Centroid(interaction.Coordinates),
		}},
	}
	dataPoint.Items = append(dataPoint.Items, model.NewStructuralItem(label, element))

	logger.Logger.Debugw("added interaction item to data point",
		"label", label,
		"data_point", dataPoint.Identifier.String())
}

func nextSerial(dataPoint *model.DataPoint[string]) int {
	next := 1
	for _, item := range dataPoint.Items {
		if item.Element != nil && item.Element.Serial >= next {
			next = item.Element.Serial + 1
		}
	}
	return next
}
