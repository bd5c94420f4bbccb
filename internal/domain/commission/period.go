package commission

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const dateLayout = "2006-01-02"

// Period is a labelled range of calendar days, Start inclusive and End
// exclusive.
type Period struct {
	Label string
	Start string
	End   string
}

var weekLabel = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ParsePeriod accepts YYYY-MM (month), YYYY-Www (ISO week) and YYYY-MM-DD (day).
func ParsePeriod(label string) (Period, error) {
	if m := weekLabel.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		start, ok := isoWeekStart(year, week)
		if !ok {
			return Period{}, httperr.ErrBusiness("invalid_period")
		}
		return newPeriod(label, start, start.AddDate(0, 0, 7)), nil
	}

	if t, err := time.Parse("2006-01", label); err == nil {
		return newPeriod(label, t, t.AddDate(0, 1, 0)), nil
	}

	if t, err := time.Parse(dateLayout, label); err == nil {
		return newPeriod(label, t, t.AddDate(0, 0, 1)), nil
	}

	return Period{}, httperr.ErrBusiness("invalid_period")
}

func newPeriod(label string, start, end time.Time) Period {
	return Period{
		Label: label,
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
}

func isoWeekStart(year, week int) (time.Time, bool) {
	if week < 1 || week > 53 {
		return time.Time{}, false
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	start := jan4.AddDate(0, 0, -(wd-1)+7*(week-1))

	y, w := start.ISOWeek()
	if y != year || w != week {
		return time.Time{}, false
	}
	return start, true
}

func (p Period) String() string {
	return fmt.Sprintf("%s [%s, %s)", p.Label, p.Start, p.End)
}
