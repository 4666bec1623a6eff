package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintKey(t *testing.T) {
	at := time.Date(2025, time.March, 10, 14, 35, 0, 0, time.UTC)
	fp := Fingerprint{FlightDateUTC: at, Carrier: "AA", Origin: "JFK", Dest: "LAX", DistanceKm: 3974.336199990807}

	assert.Equal(t, "2025-03-10T14:35:00Z|AA|JFK|LAX|3974.336199990807", fp.Key())

	// the same instant in another zone renders the same key
	same := fp
	same.FlightDateUTC = at.In(time.FixedZone("EST", -5*3600))
	assert.Equal(t, fp.Key(), same.Key())

	near := fp
	near.DistanceKm = 3974.3361999908
	assert.NotEqual(t, fp.Key(), near.Key())
}
