package campus

import "time"

// SetNowFunc replaces the clock until the returned func is called.
func SetNowFunc(f func() time.Time) (restore func()) {
	orig := nowFunc
	nowFunc = f
	return func() { nowFunc = orig }
}
