package common

import (
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// NormalizeCode trims and uppercases an airport or carrier code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
