package constants

const (
	SelectAllPredictions = `
	SELECT verdict, probability, confidence FROM predictions
	`
)
