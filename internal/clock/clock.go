package clock

import "time"

// NowFunc supplies the wall clock.  Swap it out in tests that assert on
// durations or timestamps.
var NowFunc = time.Now

// Now reports the current time via NowFunc.
func Now() time.Time { return NowFunc() }
