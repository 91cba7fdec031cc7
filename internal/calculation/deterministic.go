package calculation

import "time"

// nowFunc is the clock of engines built without WithClock. The advance-tax
// schedule is its only consumer, and only when past installments are excluded.
var nowFunc = time.Now
