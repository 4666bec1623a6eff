package auth

import "flightontime/backend/internal/constants"

// UserClaims is the authenticated caller identity handlers can rely on
type UserClaims interface {
	UserID() string
	Role() string
	Source() string
	HasPermission(action string) bool
}

type JWTClaims struct {
	Subject   string
	RoleValue constants.CallerRole
	TokenID   string
}

func (c *JWTClaims) UserID() string { return c.Subject }
func (c *JWTClaims) Role() string { // implements UserClaims
	return string(c.RoleValue)
}
func (c *JWTClaims) Source() string { return "JWT" }

// HasPermission: admins may do anything, clients may only predict and read
func (c *JWTClaims) HasPermission(action string) bool {
	if c.RoleValue == constants.RoleAdmin {
		return true
	}
	switch action {
	case ActionPredict, ActionReadAirports, ActionReadStats:
		return true
	default:
		return false
	}
}

const (
	ActionPredict      = "predict"
	ActionReadAirports = "read_airports"
	ActionReadStats    = "read_stats"
)
