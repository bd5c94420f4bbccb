package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Grid is the salon's fixed slot grid for a day.
type Grid struct {
	Open  int
	Close int
	Step  int
}

func NewGrid(open, close string, step int) (Grid, error) {
	o, err := ParseClock(open)
	if err != nil {
		return Grid{}, err
	}
	c, err := ParseClock(close)
	if err != nil {
		return Grid{}, err
	}
	if step <= 0 || c <= o {
		return Grid{}, fmt.Errorf("invalid slot grid %s-%s/%d", open, close, step)
	}
	return Grid{Open: o, Close: c, Step: step}, nil
}

// Starts lists every slot start on the grid, in order.
func (g Grid) Starts() []int {
	var out []int
	for m := g.Open; m < g.Close; m += g.Step {
		out = append(out, m)
	}
	return out
}

// Aligned reports whether minute is a slot start on the grid.
func (g Grid) Aligned(minute int) bool {
	return minute >= g.Open && minute < g.Close && (minute-g.Open)%g.Step == 0
}

// ParseSlot parses an HH:MM time and checks it sits on the grid.
func (g Grid) ParseSlot(hm string) (int, error) {
	m, err := ParseClock(hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	if !g.Aligned(m) {
		return 0, httperr.ErrBusiness("time_off_grid")
	}
	return m, nil
}

func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ===============================
// Slot computation
// ===============================

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	WorkerIDs []uint `json:"worker_ids,omitempty"`
}

// WorkerDay is everything needed to decide one worker's slots on one day.
type WorkerDay struct {
	WorkerID uint
	// Schedule is nil when the worker does not work that weekday or is
	// flagged unavailable.
	Schedule *DaySchedule
	// Busy holds the intervals of non-cancelled appointments.
	Busy []Interval
	// NotBefore is the first minute a slot may start; slots starting
	// earlier are already in the past.
	NotBefore int
}

// Free reports whether the worker can take [start, start+duration).
func (d WorkerDay) Free(g Grid, start, duration int) bool {
	span := Interval{Start: start, End: start + duration}

	if d.Schedule == nil || span.Start < d.NotBefore || span.End > g.Close {
		return false
	}
	if !d.Schedule.IsWithinWorkingHours(span) {
		return false
	}
	for _, b := range d.Busy {
		if span.Overlaps(b) {
			return false
		}
	}
	return true
}

// ComputeSlots tags every grid slot with the worker's availability.
func ComputeSlots(g Grid, duration int, day WorkerDay) []Slot {
	starts := g.Starts()
	out := make([]Slot, 0, len(starts))
	for _, start := range starts {
		out = append(out, Slot{
			Time:      FormatClock(start),
			Available: day.Free(g, start, duration),
		})
	}
	return out
}

// ComputeAnySlots is the "first available" variant: a slot is available
// when at least one worker is free, and the free workers are listed on it
// in the order given.
func ComputeAnySlots(g Grid, duration int, days []WorkerDay) []Slot {
	starts := g.Starts()
	out := make([]Slot, 0, len(starts))
	for _, start := range starts {
		slot := Slot{Time: FormatClock(start)}
		for _, d := range days {
			if d.Free(g, start, duration) {
				slot.Available = true
				slot.WorkerIDs = append(slot.WorkerIDs, d.WorkerID)
			}
		}
		out = append(out, slot)
	}
	return out
}
