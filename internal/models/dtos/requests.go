package dtos

import "time"

// PredictReq is the POST /predict body. IATA format is left to the airport
// resolver so a malformed code is reported as INVALID_IATA.
type PredictReq struct {
	FlightDateUTC time.Time `json:"flightDateUtc" validate:"required"`
	AirlineCode   string    `json:"airlineCode" validate:"required,alphanum,min=2,max=3"`
	OriginIATA    string    `json:"originIata" validate:"required"`
	DestIATA      string    `json:"destIata" validate:"required"`
}
