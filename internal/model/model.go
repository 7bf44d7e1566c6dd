package model

// Environment identifies the runtime environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// LossType classifies which policy the claim runs against.
type LossType string

const (
	// LossTypeClient is a claim against the insured's own policy.
	LossTypeClient LossType = "client"
	// LossTypeThirdParty is a claim against a liable third party's policy.
	LossTypeThirdParty LossType = "third_party"
)

// LossTypeLabels maps a loss type to its display label.
var LossTypeLabels = map[LossType]string{
	LossTypeClient:     "Client Vehicle (Own Damage)",
	LossTypeThirdParty: "Third Party Vehicle",
}

// Decision labels for a total-loss classification.
const (
	DecisionTotalLoss  = "TOTAL LOSS"
	DecisionRepairable = "REPAIRABLE"
)
