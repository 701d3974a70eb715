package environment

import "strings"

// Environment is a deployment tier.
type Environment string

const (
	// Local is a developer machine.
	Local Environment = "local"
	// Development is a shared development deployment.
	Development Environment = "dev"
	// Staging mirrors production with non-production data.
	Staging Environment = "stage"
	// Production serves real users.
	Production Environment = "prod"
)

// Parse normalizes a tier name. Long spellings ("development", "staging",
// "production") map to their short form; unknown values fall back to Local.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	case "stage", "staging":
		return Staging
	case "dev", "development":
		return Development
	default:
		return Local
	}
}

// IsLive reports whether the tier serves traffic over HTTPS and therefore
// requires secure cookies.
func (e Environment) IsLive() bool {
	return e == Staging || e == Production
}

// IsDev reports whether verbose diagnostics should be enabled.
func (e Environment) IsDev() bool {
	return e == Local || e == Development
}

func (e Environment) String() string { return string(e) }
