package dataset

// Canonical column names of the merged panel. Every pipeline stage after
// normalization addresses columns by these names only.
const (
	ColCountryCode = "CountryCode"
	ColCountryName = "CountryName"
	ColYear        = "Year"

	ColMPI          = "MPI"
	ColGDP          = "GDP"
	ColGDPPerCapita = "GDPPerCapita"
	ColPopulation   = "Population"
	ColInflation    = "Inflation"
	ColTradeShare   = "TradeShare"
	ColExternalDebt = "ExternalDebt"
	ColFDIShare     = "FDIShare"

	ColVoiceAccountability     = "VoiceAccountability"
	ColPoliticalStability      = "PoliticalStability"
	ColGovernmentEffectiveness = "GovernmentEffectiveness"
	ColRegulatoryQuality       = "RegulatoryQuality"
	ColRuleOfLaw               = "RuleOfLaw"
	ColControlOfCorruption     = "ControlOfCorruption"

	// Long-format governance columns before pivoting
	ColIndicator = "Indicator"
	ColEstimate  = "Estimate"
)

// Derived columns appended by the transform, governance index and report
// stages.
const (
	ColPriceIndex      = "PriceIndex"
	ColRealMPI         = "RealMPI"
	ColFDIAmount       = "FDIAmount"
	ColLogRealMPI      = "LogRealMPI"
	ColLogFDIAmount    = "LogFDIAmount"
	ColLogGDPPerCapita = "LogGDPPerCapita"
	ColLogGDP          = "LogGDP"
	ColLogPopulation   = "LogPopulation"
	ColPost2020        = "Post2020"
	ColGovernanceIndex = "GovernanceIndex"
)

// governanceIndicator maps one long-format indicator code to its wide column.
type governanceIndicator struct {
	Code   string
	Column string
}

// governanceIndicators lists the indicator codes in canonical order.
var governanceIndicators = []governanceIndicator{
	{"va", ColVoiceAccountability},
	{"pv", ColPoliticalStability},
	{"ge", ColGovernmentEffectiveness},
	{"rq", ColRegulatoryQuality},
	{"rl", ColRuleOfLaw},
	{"cc", ColControlOfCorruption},
}

// GovernanceColumns returns the six governance indicator columns in their
// canonical order.
func GovernanceColumns() []string {
	cols := make([]string, len(governanceIndicators))
	for i, ind := range governanceIndicators {
		cols[i] = ind.Column
	}
	return cols
}
