package config

import (
	"os"
	"strings"
)

// StrictOrderLifecycleGuards enables the tightened order transition rules:
// payment updates are rejected on Cancelled/Delivered orders and test drive
// confirm/complete/cancel require the expected prior status.
//
// Legacy behavior (flag off) leaves those transitions unguarded.
//
// Set via env:
// - STRICT_ORDER_LIFECYCLE_GUARDS=true
func StrictOrderLifecycleGuards() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("STRICT_ORDER_LIFECYCLE_GUARDS")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
