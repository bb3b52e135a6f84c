package corpus

import (
	"os"
	"path/filepath"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// MotifWriter persists merged motifs below a base directory, one file per
// data point nested under its component key.
type MotifWriter struct {
	BaseDir string
}

// Write stores the motif of one data point under baseDir/componentKey. The
// file name is derived from the data point identifier.
func (w *MotifWriter) Write(componentKey string, identifier model.DataPointIdentifier, motif *model.StructuralMotif) error {
	if motif == nil {
		return errors.Wrapf(errors.ErrNoStructuralMotif, "data point %s", identifier)
	}
	dir := filepath.Join(w.BaseDir, componentKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating component directory %s", dir)
	}
	path := filepath.Join(dir, identifier.String()+".pdb")
	if err := os.WriteFile(path, []byte(motif.Records()), 0o644); err != nil {
		return errors.Wrapf(err, "writing motif %s", path)
	}
	logger.Logger.Debugw("wrote motif", "path", path, "elements", motif.Size())
	return nil
}
