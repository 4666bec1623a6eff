package constants

import (
	"database/sql/driver"
	"fmt"
)

// CallerRole is the role carried in a caller token
type CallerRole string

const (
	RoleClient CallerRole = "client"
	RoleAdmin  CallerRole = "admin"
)

// Stringer ­– convenient for fmt / logs
func (r CallerRole) String() string { return string(r) }

// IsValid reports whether the role is one we issue tokens for
func (r CallerRole) IsValid() bool {
	return r == RoleClient || r == RoleAdmin
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *CallerRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = CallerRole(v)
	case []byte:
		*r = CallerRole(v)
	default:
		return fmt.Errorf("CallerRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r CallerRole) Value() (driver.Value, error) { return string(r), nil }
