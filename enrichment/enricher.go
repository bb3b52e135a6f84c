// Package enrichment adds optional, best-effort items to data points before
// mining, such as interaction pseudo-atoms obtained from an external
// annotation source.
package enrichment

import (
	"cmp"
	"context"

	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/model"
)

// DataPointEnricher adds items to a data point in place. Enrichment is
// optional; a corpus mined without it only loses the additional labels.
type DataPointEnricher[L cmp.Ordered] interface {
	EnrichDataPoint(ctx context.Context, dataPoint *model.DataPoint[L]) error
}

// BestEffort wraps an enricher so that failures are logged and swallowed
// instead of aborting the run.
type BestEffort[L cmp.Ordered] struct {
	Enricher DataPointEnricher[L]
}

func (b BestEffort[L]) EnrichDataPoint(ctx context.Context, dataPoint *model.DataPoint[L]) error {
	if b.Enricher == nil {
		return nil
	}
	if err := b.Enricher.EnrichDataPoint(ctx, dataPoint); err != nil {
		logger.Logger.Warnw("enrichment failed, continuing without additional items",
			"data_point", dataPoint.Identifier.String(),
			"error", err)
	}
	return nil
}

// EnrichCorpus applies the enricher to every data point, best effort.
func EnrichCorpus[L cmp.Ordered](ctx context.Context, enricher DataPointEnricher[L], corpus []*model.DataPoint[L]) {
	wrapped := BestEffort[L]{Enricher: enricher}
	for _, dataPoint := range corpus {
		_ = wrapped.EnrichDataPoint(ctx, dataPoint)
	}
}
