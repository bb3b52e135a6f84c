package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/model"
)

const corpusJSON = `[
  {
    "structure_id": "1aaa",
    "chain_id": "A",
    "items": [
      {
        "label": "His",
        "chain": "A",
        "serial": 1,
        "atoms": [
          {"name": "CA", "position": [1.0, 2.0, 3.0]},
          {"name": "CB", "position": [2.0, 2.0, 3.0]}
        ]
      },
      {"label": "hyb"}
    ]
  },
  {
    "structure_id": "2bbb",
    "chain_id": "B",
    "items": [
      {"label": "Ser", "family": "Ser", "chain": "B", "serial": 4,
       "atoms": [{"name": "CA", "position": [0.0, 0.0, 0.0]}]}
    ]
  }
]`

func TestReadJSON(t *testing.T) {
	dataPoints, err := ReadJSON(strings.NewReader(corpusJSON))
	require.NoError(t, err)
	require.Len(t, dataPoints, 2)

	first := dataPoints[0]
	assert.Equal(t, "1aaa_A", first.Identifier.String())
	require.Len(t, first.Items, 2)

	backed := first.Items[0]
	require.NotNil(t, backed.Element)
	assert.Equal(t, "His", backed.Element.Family, "family defaults to the label")
	assert.Equal(t, "A:1", backed.Element.Key())
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, backed.Element.Atoms[0].Position)

	assert.Nil(t, first.Items[1].Element, "items without atoms stay unbacked")
}

func TestReadJSONMalformed(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":       `{"oops"`,
		"unlabeled item": `[{"structure_id": "1aaa", "chain_id": "A", "items": [{"serial": 1}]}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(payload))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCorpusMalformed))
		})
	}
}

func TestReadJSONBadIdentifier(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[{"structure_id": "0!", "chain_id": "A", "items": []}]`))
	assert.Error(t, err)
}

func TestMotifWriter(t *testing.T) {
	id, err := model.NewDataPointIdentifier("1aaa", "A")
	require.NoError(t, err)
	motif := model.NewStructuralMotif([]*model.StructuralElement{
		{Family: "His", Chain: "A", Serial: 1, Atoms: []model.Atom{{Name: "CA", Position: r3.Vec{X: 1}}}},
	})

	writer := &MotifWriter{BaseDir: t.TempDir()}
	require.NoError(t, writer.Write("His-Ser", id, motif))

	content, err := os.ReadFile(filepath.Join(writer.BaseDir, "His-Ser", "1aaa_A.pdb"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "ATOM")
	assert.Contains(t, string(content), "His")
}

func TestMotifWriterRequiresMotif(t *testing.T) {
	id, err := model.NewDataPointIdentifier("1aaa", "A")
	require.NoError(t, err)
	writer := &MotifWriter{BaseDir: t.TempDir()}
	err = writer.Write("His", id, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoStructuralMotif))
}
