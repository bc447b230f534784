package panel

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
)

// ModelComparison bundles both fits and the specification test for one
// specification. Err records what failed; the other fields hold whatever
// was still estimable.
type ModelComparison struct {
	Spec    Spec
	Sample  *Sample
	Fixed   *EstimateResult
	Random  *EstimateResult
	Hausman *HausmanResult
	Err     error
}

// EstimateAll fits every specification independently. A specification that
// cannot be estimated is reported through its Err field and never aborts
// the others.
func EstimateAll(df dataframe.DataFrame, specs []Spec) []ModelComparison {
	results := make([]ModelComparison, 0, len(specs))
	for _, spec := range specs {
		results = append(results, estimateOne(df, spec))
	}
	return results
}

func estimateOne(df dataframe.DataFrame, spec Spec) ModelComparison {
	out := ModelComparison{Spec: spec}

	sample, err := BuildSample(df, spec)
	if err != nil {
		out.Err = err
		return out
	}
	out.Sample = sample

	fe, feErr := FitFixedEffects(sample)
	if feErr != nil {
		feErr = fmt.Errorf("%s: %w", MethodFixedEffects, feErr)
	}
	out.Fixed = fe

	re, reErr := FitRandomEffects(sample)
	if reErr != nil {
		reErr = fmt.Errorf("%s: %w", MethodRandomEffects, reErr)
	}
	out.Random = re

	var hErr error
	if fe != nil && re != nil {
		out.Hausman, hErr = Hausman(fe, re)
	}

	out.Err = errors.Join(feErr, reErr, hErr)
	return out
}
