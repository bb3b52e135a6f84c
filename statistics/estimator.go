package statistics

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/motifminer/motifminer/errors"
	"github.com/motifminer/motifminer/logger"
	"github.com/motifminer/motifminer/metrics"
	"github.com/motifminer/motifminer/miner"
	"github.com/motifminer/motifminer/model"
)

// State tracks an itemset through the significance estimation state machine.
// RejectedForFit, Insignificant and Significant are terminal.
type State int

const (
	// StateUnsampled means no usable background distribution exists for the
	// itemset (for example when its own metric was never computable).
	StateUnsampled State = iota
	// StateSampled means a background distribution exists but significance
	// was not determined.
	StateSampled
	// StateRejectedForFit means the fitted normal failed the KS
	// goodness-of-fit check: the background model is untrustworthy for this
	// itemset, which says nothing about its significance.
	StateRejectedForFit
	// StateInsignificant means the observed value was not significant.
	StateInsignificant
	// StateSignificant means the itemset entered the significance index.
	StateSignificant
)

func (s State) String() string {
	switch s {
	case StateSampled:
		return "sampled"
	case StateRejectedForFit:
		return "rejected-for-fit"
	case StateInsignificant:
		return "insignificant"
	case StateSignificant:
		return "significant"
	default:
		return "unsampled"
	}
}

// Significance pairs a p-value with the KS goodness-of-fit p-value of the
// background model it was derived from. Entries order by p-value ascending.
type Significance struct {
	PValue float64
	KS     float64
}

// Entry maps a significance to its itemset in the ranked index.
type Entry[L cmp.Ordered] struct {
	Significance Significance
	Itemset      *model.Itemset[L]
}

// EstimatorOptions configures significance estimation.
type EstimatorOptions struct {
	SamplerOptions

	// KSCutoff is the minimal KS goodness-of-fit p-value for the fitted
	// background normal to be trusted.
	KSCutoff float64
	// SignificanceCutoff is the maximal p-value for an itemset to enter the
	// significance index.
	SignificanceCutoff float64
}

// Estimator fits a normal model to each itemset's background distribution,
// validates the fit, and ranks itemsets by the cumulative probability of
// their true observed metric value under the fitted null model.
type Estimator[L cmp.Ordered] struct {
	miner   *miner.Miner[L]
	kind    metrics.Kind
	options EstimatorOptions

	background  map[string]*model.Distribution
	states      map[string]State
	significant []Entry[L]
}

// NewEstimator creates an estimator for the miner's frequent itemsets.
func NewEstimator[L cmp.Ordered](m *miner.Miner[L], kind metrics.Kind, options EstimatorOptions) *Estimator[L] {
	return &Estimator[L]{
		miner:   m,
		kind:    kind,
		options: options,
		states:  make(map[string]State),
	}
}

// Estimate samples the background distributions and determines significance
// for every frequent itemset.
func (e *Estimator[L]) Estimate() error {
	sampler := NewSampler(e.miner, e.kind, e.options.SamplerOptions)
	background, err := sampler.Sample()
	if err != nil {
		return errors.Wrap(err, "sampling background distributions")
	}
	return e.EstimateFrom(background)
}

// EstimateFrom determines significance against precomputed background
// distributions. Itemsets are processed in deterministic key order; the
// final ranking depends only on computed p-values, never on arrival order.
func (e *Estimator[L]) EstimateFrom(background map[string]*model.Distribution) error {
	if !e.miner.Mined() {
		return errors.Wrap(errors.ErrNotMined, "significance estimation")
	}
	e.background = background
	e.significant = nil

	ordered := slices.Clone(e.miner.TotalItemsets())
	slices.SortFunc(ordered, func(a, b *model.Itemset[L]) int {
		return strings.Compare(a.Key(), b.Key())
	})
	for _, itemset := range ordered {
		e.determineSignificance(itemset)
	}

	slices.SortStableFunc(e.significant, func(a, b Entry[L]) int {
		if c := cmp.Compare(a.Significance.PValue, b.Significance.PValue); c != 0 {
			return c
		}
		return strings.Compare(a.Itemset.Key(), b.Itemset.Key())
	})
	logger.Logger.Infow("significance estimation finished",
		"kind", e.kind.String(),
		"significant", len(e.significant),
		"itemsets", len(ordered))
	return nil
}

// Significant returns the significance-ranked index, ordered by p-value
// ascending with ties broken by label-set key.
func (e *Estimator[L]) Significant() []Entry[L] {
	return e.significant
}

// BackgroundDistributions returns the sampled null distributions by itemset
// key.
func (e *Estimator[L]) BackgroundDistributions() map[string]*model.Distribution {
	return e.background
}

// State returns the terminal state of the itemset with the given key.
func (e *Estimator[L]) State(key string) State {
	return e.states[key]
}

func (e *Estimator[L]) determineSignificance(itemset *model.Itemset[L]) {
	key := itemset.Key()
	background := e.background[key]
	if background == nil || background.Len() < 2 {
		logger.Logger.Debugw("no background distribution, skipping itemset",
			"itemset", key)
		e.states[key] = StateUnsampled
		return
	}
	e.states[key] = StateSampled

	values := background.Observations()
	mean, standardDeviation := stat.MeanStdDev(values, nil)
	if standardDeviation == 0 || math.IsNaN(standardDeviation) {
		logger.Logger.Warnw("degenerate background distribution, skipping itemset",
			"itemset", key,
			"mean", mean)
		e.states[key] = StateRejectedForFit
		return
	}
	normal := distuv.Normal{Mu: mean, Sigma: standardDeviation}

	// KS p-value estimates the quality of the normal fit. A poor fit means
	// the null model is untrustworthy, not that the itemset is insignificant.
	_, ks := KolmogorovSmirnovTest(values, normal.CDF)
	if ks < e.options.KSCutoff {
		logger.Logger.Warnw("background distribution violates KS cutoff, skipping itemset",
			"itemset", key,
			"kind", e.kind.String(),
			"ks", ks)
		e.states[key] = StateRejectedForFit
		return
	}

	observed := metrics.Observed(e.kind, itemset)
	if math.IsNaN(observed) {
		logger.Logger.Debugw("observed metric unavailable, skipping itemset",
			"itemset", key,
			"kind", e.kind.String())
		e.states[key] = StateUnsampled
		return
	}

	pValue := normal.CDF(observed)
	logger.Logger.Debugw("computed p-value", "itemset", key, "p_value", pValue)
	if pValue < e.options.SignificanceCutoff {
		significance := Significance{PValue: pValue, KS: ks}
		e.significant = append(e.significant, Entry[L]{Significance: significance, Itemset: itemset})
		itemset.PValue = pValue
		itemset.KS = ks
		e.states[key] = StateSignificant
		logger.Logger.Infow("itemset is significant",
			"itemset", key,
			"p_value", pValue,
			"ks", ks)
	} else {
		e.states[key] = StateInsignificant
		logger.Logger.Infow("itemset is insignificant", "itemset", key)
	}
}
