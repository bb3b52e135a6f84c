// Package corpus holds the narrow shims toward external collaborators: a JSON
// corpus reader standing in for the structure-file parser, and a writer for
// merged motif artifacts.
package corpus

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

type atomRecord struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
}

type itemRecord struct {
	Label  string       `json:"label"`
	Family string       `json:"family,omitempty"`
	Chain  string       `json:"chain,omitempty"`
	Serial int          `json:"serial,omitempty"`
	Atoms  []atomRecord `json:"atoms,omitempty"`
}

type dataPointRecord struct {
	StructureID string       `json:"structure_id"`
	ChainID     string       `json:"chain_id"`
	Items       []itemRecord `json:"items"`
}

// ReadJSON decodes a corpus from its JSON representation: an array of data
// points, each carrying its identifier and labeled items with optional
// structural backing.
func ReadJSON(reader io.Reader) ([]*model.DataPoint[string], error) {
	var records []dataPointRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCorpusMalformed, err.Error())
	}

	dataPoints := make([]*model.DataPoint[string], 0, len(records))
	for _, record := range records {
		identifier, err := model.NewDataPointIdentifier(record.StructureID, record.ChainID)
		if err != nil {
			return nil, err
		}
		items := make([]*model.Item[string], 0, len(record.Items))
		for _, item := range record.Items {
			if item.Label == "" {
				return nil, errors.Wrapf(errors.ErrCorpusMalformed, "unlabeled item in data point %s", identifier)
			}
			items = append(items, decodeItem(item))
		}
		dataPoints = append(dataPoints, &model.DataPoint[string]{
			Identifier: identifier,
			Items:      items,
		})
	}
	logger.Logger.Infow("read corpus", "data_points", len(dataPoints))
	return dataPoints, nil
}

// ReadJSONFile reads a corpus from a file path.
func ReadJSONFile(path string) ([]*model.DataPoint[string], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening corpus file %s", path)
	}
	defer file.Close()
	return ReadJSON(file)
}

func decodeItem(record itemRecord) *model.Item[string] {
	if len(record.Atoms) == 0 {
		return model.NewItem(record.Label)
	}
	atoms := make([]model.Atom, len(record.Atoms))
	for i, atom := range record.Atoms {
		atoms[i] = model.Atom{
			Name:     atom.Name,
			Position: r3.Vec{X: atom.Position[0], Y: atom.Position[1], Z: atom.Position[2]},
		}
	}
	family := record.Family
	if family == "" {
		family = record.Label
	}
	return model.NewStructuralItem(record.Label, &model.StructuralElement{
		Family: family,
		Chain:  record.Chain,
		Serial: record.Serial,
		Atoms:  atoms,
	})
}
