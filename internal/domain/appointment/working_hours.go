package appointment

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// DaySchedule is a worker's parsed working window for one weekday,
// including the lunch break.
type DaySchedule struct {
	Work  Interval
	Lunch *Interval
}

// ScheduleFor returns nil when the row is missing, inactive or malformed,
// meaning the worker takes no bookings that day.
func ScheduleFor(wh *models.WorkerSchedule) *DaySchedule {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil
	}

	start, err := ParseClock(wh.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseClock(wh.EndTime)
	if err != nil || end <= start {
		return nil
	}

	ds := &DaySchedule{Work: Interval{Start: start, End: end}}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, err1 := ParseClock(wh.LunchStart)
		le, err2 := ParseClock(wh.LunchEnd)
		if err1 == nil && err2 == nil && le > ls {
			ds.Lunch = &Interval{Start: ls, End: le}
		}
	}

	return ds
}

// IsWithinWorkingHours checks the span fits the working window and does
// not touch the lunch break.
func (d DaySchedule) IsWithinWorkingHours(span Interval) bool {
	if span.Start < d.Work.Start || span.End > d.Work.End {
		return false
	}
	if d.Lunch != nil && span.Overlaps(*d.Lunch) {
		return false
	}
	return true
}
