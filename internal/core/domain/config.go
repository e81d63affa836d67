package domain

// Well-known global configuration keys.
const (
	ConfigFringeBenefitRate       = "FRINGE_BENEFIT_RATE"
	ConfigDefaultAmortizationLife = "DEFAULT_AMORTIZATION_LIFE"
	ConfigCapitalizationThreshold = "CAPITALIZATION_THRESHOLD"
)

// GlobalConfig is a system-wide parameter read by the allocator as a
// fallback when an entity carries no override of its own.
type GlobalConfig struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Label string `json:"label"`
	AuditFields
}
