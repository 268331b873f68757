package order

import (
	"fmt"
	"math/rand"
	"time"
)

// NewOrderNumber builds a human-readable order reference. The millisecond
// timestamp plus a 4-digit suffix keeps collisions out of practical reach;
// the unique index on order_number backstops the rest.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%04d", now.UnixMilli(), rand.Intn(10000))
}
