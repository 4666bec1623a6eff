package entities

import (
	"fmt"
	"strconv"
	"time"

	"flightontime/backend/internal/constants"
)

// Fingerprint is the five-field identity of a prediction request
type Fingerprint struct {
	FlightDateUTC time.Time
	Carrier       string
	Origin        string
	Dest          string
	DistanceKm    float64
}

// Key renders the fingerprint as a stable string for locks and logs.
// The distance is printed with full precision so distinct floats never collide.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		f.FlightDateUTC.UTC().Format(time.RFC3339Nano),
		f.Carrier, f.Origin, f.Dest,
		strconv.FormatFloat(f.DistanceKm, 'g', -1, 64),
	)
}

// PredictionRow is one stored prediction as read for statistics
type PredictionRow struct {
	Verdict     constants.Verdict    `db:"verdict"`
	Probability *float64             `db:"probability"`
	Confidence  constants.Confidence `db:"confidence"`
}
