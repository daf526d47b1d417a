package clock

import "time"

// Clock is the single time source for expiry decisions. Production code uses
// the system clock; tests substitute a fixed clock to exercise expiry windows
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the server wall clock in UTC.
func System() Clock { return systemClock{} }
