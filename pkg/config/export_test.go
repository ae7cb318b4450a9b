package config

import "time"

// SetSettleDelay replaces the reload settle delay and returns a restore func
func SetSettleDelay(d time.Duration) func() {
	old := settleDelay
	settleDelay = d
	return func() { settleDelay = old }
}
