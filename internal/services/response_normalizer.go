package services

import (
	"strings"

	"flightontime/backend/internal/constants"
)

// The model answers in Spanish or English; anything else falls back to the defaults.
var delayedVerdicts = map[string]struct{}{
	"retrasado": {},
	"retrasada": {},
	"retraso":   {},
	"delayed":   {},
	"delay":     {},
	"late":      {},
}

var confidenceLevels = map[string]constants.Confidence{
	"baja":   constants.ConfidenceLow,
	"low":    constants.ConfidenceLow,
	"media":  constants.ConfidenceMedium,
	"medio":  constants.ConfidenceMedium,
	"medium": constants.ConfidenceMedium,
	"alta":   constants.ConfidenceHigh,
	"alto":   constants.ConfidenceHigh,
	"high":   constants.ConfidenceHigh,
}

// Normalize maps the model's free-text verdict and confidence onto the closed
// vocabulary. Unknown input yields ON_TIME and MEDIUM; it never fails.
func Normalize(rawVerdict, rawConfidence string) (constants.Verdict, constants.Confidence) {
	verdict := constants.VerdictOnTime
	if _, ok := delayedVerdicts[strings.ToLower(strings.TrimSpace(rawVerdict))]; ok {
		verdict = constants.VerdictDelayed
	}

	confidence, ok := confidenceLevels[strings.ToLower(strings.TrimSpace(rawConfidence))]
	if !ok {
		confidence = constants.ConfidenceMedium
	}

	return verdict, confidence
}

// clampProbability keeps a reported probability inside [0, 1]
func clampProbability(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return &v
}
