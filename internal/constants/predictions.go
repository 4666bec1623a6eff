package constants

import (
	"database/sql/driver"
	"fmt"
)

// Verdict is the closed outcome of a delay prediction
type Verdict string

const (
	VerdictOnTime  Verdict = "ON_TIME"
	VerdictDelayed Verdict = "DELAYED"
)

// Confidence qualifies a prediction's probability
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Verdicts lists every verdict in display order
var Verdicts = []Verdict{VerdictOnTime, VerdictDelayed}

// Confidences lists every confidence level in display order
var Confidences = []Confidence{ConfidenceLow, ConfidenceMedium, ConfidenceHigh}

func (v Verdict) String() string    { return string(v) }
func (c Confidence) String() string { return string(c) }

// Scan implements the sql.Scanner interface
func (v *Verdict) Scan(src interface{}) error {
	s, err := scanString("Verdict", src)
	if err != nil {
		return err
	}
	*v = Verdict(s)
	return nil
}

// Value implements the driver.Valuer interface
func (v Verdict) Value() (driver.Value, error) { return string(v), nil }

// Scan implements the sql.Scanner interface
func (c *Confidence) Scan(src interface{}) error {
	s, err := scanString("Confidence", src)
	if err != nil {
		return err
	}
	*c = Confidence(s)
	return nil
}

// Value implements the driver.Valuer interface
func (c Confidence) Value() (driver.Value, error) { return string(c), nil }

func scanString(name string, src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s: cannot scan type %T", name, src)
	}
}
