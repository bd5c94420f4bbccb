package appointment

import "time"

// AnyWorker asks the calculator for the union over all available workers.
const AnyWorker uint = 0

type AvailabilityInput struct {
	WorkerID uint
	Date     time.Time
	// Either ServiceID or Duration (minutes) must be set; the service
	// duration wins when both are.
	ServiceID uint
	Duration  int
}
