package output

import "github.com/rentvest/property-vs-fund/internal/domain"

// DefaultAssumptions lists the modelling assumptions of the built-in tables.
// Used when a comparison carries none.
var DefaultAssumptions = domain.VictoriaRules2024().GenerateAssumptions()

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
