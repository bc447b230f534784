package panel

import "mpipanel/internal/dataset"

// Specifications returns the estimated model set. The governance predictor
// varies across a single indicator, the composite score and its
// post-threshold interaction, and the dependent side alternates between
// deflated mobilized investment and FDI. The Post2020 main effect is
// absorbed by the year effects, so the interaction specification carries
// only the product term.
func Specifications() []Spec {
	controls := []string{
		dataset.ColLogGDPPerCapita,
		dataset.ColTradeShare,
		dataset.ColInflation,
		dataset.ColExternalDebt,
	}

	return []Spec{
		{
			Name:       "mpi-rule-of-law",
			Dependent:  dataset.ColLogRealMPI,
			Predictors: []Term{{Column: dataset.ColRuleOfLaw}},
			Controls:   controls,
		},
		{
			Name:       "mpi-government-effectiveness",
			Dependent:  dataset.ColLogRealMPI,
			Predictors: []Term{{Column: dataset.ColGovernmentEffectiveness}},
			Controls:   controls,
		},
		{
			Name:       "mpi-governance-index",
			Dependent:  dataset.ColLogRealMPI,
			Predictors: []Term{{Column: dataset.ColGovernanceIndex}},
			Controls:   controls,
		},
		{
			Name:      "mpi-governance-post2020",
			Dependent: dataset.ColLogRealMPI,
			Predictors: []Term{
				{Column: dataset.ColGovernanceIndex},
				{Column: dataset.ColGovernanceIndex, InteractWith: dataset.ColPost2020},
			},
			Controls: controls,
		},
		{
			Name:       "fdi-governance-index",
			Dependent:  dataset.ColLogFDIAmount,
			Predictors: []Term{{Column: dataset.ColGovernanceIndex}},
			Controls:   controls,
		},
		{
			Name:       "fdi-rule-of-law",
			Dependent:  dataset.ColLogFDIAmount,
			Predictors: []Term{{Column: dataset.ColRuleOfLaw}},
			Controls:   controls,
		},
	}
}
