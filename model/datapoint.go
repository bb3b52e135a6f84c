package model

import (
	"cmp"
	"fmt"
)

// Item is one labeled element of a data point. The label is the unit of
// mining; Element is an optional non-owning back-reference to the structural
// element the label was derived from, kept for traceability only.
type Item[L cmp.Ordered] struct {
	Label   L
	Element *StructuralElement
}

// NewItem creates an item without structural backing.
func NewItem[L cmp.Ordered](label L) *Item[L] {
	return &Item[L]{Label: label}
}

// NewStructuralItem creates an item backed by a structural element.
func NewStructuralItem[L cmp.Ordered](label L, element *StructuralElement) *Item[L] {
	return &Item[L]{Label: label, Element: element}
}

func (i *Item[L]) String() string {
	return fmt.Sprint(i.Label)
}

// DataPoint is one observation of a structure chain: an ordered collection of
// labeled items. Constructed once by the reader and immutable afterward,
// except for item-level label remapping performed by an external mapping
// stage.
type DataPoint[L cmp.Ordered] struct {
	Identifier DataPointIdentifier
	Items      []*Item[L]
}

// NewDataPoint creates a data point for the given identifier.
func NewDataPoint[L cmp.Ordered](identifier DataPointIdentifier, items []*Item[L]) *DataPoint[L] {
	return &DataPoint[L]{Identifier: identifier, Items: items}
}

// ItemsWithLabel returns all items of the data point carrying the label, in
// item order.
func (d *DataPoint[L]) ItemsWithLabel(label L) []*Item[L] {
	var matching []*Item[L]
	for _, item := range d.Items {
		if item.Label == label {
			matching = append(matching, item)
		}
	}
	return matching
}

func (d *DataPoint[L]) String() string {
	return d.Identifier.String()
}
