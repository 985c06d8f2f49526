package domain

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// Progress is round(100 * done / total), 0 for an empty task list.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return int(math.Round(float64(done) * 100 / float64(len(tasks))))
}

// PartitionVisits splits visits into those on or after the day of now and
// those before it. Visits with an unparseable date count as past.
func PartitionVisits(visits []Visit, now time.Time) VisitSchedule {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	schedule := VisitSchedule{Upcoming: []Visit{}, Past: []Visit{}}
	for _, v := range visits {
		d, err := time.Parse(DateLayout, v.Date)
		if err == nil && !d.Before(today) {
			schedule.Upcoming = append(schedule.Upcoming, v)
			continue
		}
		schedule.Past = append(schedule.Past, v)
	}
	return schedule
}
