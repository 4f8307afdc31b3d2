package calendar

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
)

// AssignLanes packs intervals into display lanes so that intervals sharing
// a lane never overlap. Intervals are taken in start order (ties keep input
// order) and each goes to the first lane whose last interval ended strictly
// before it starts. The result is in that start order.
func AssignLanes(intervals []calendar.LaneInterval) []calendar.LaneAssignment {
	assignments := make([]calendar.LaneAssignment, len(intervals))
	for i, iv := range intervals {
		iv.Start = dateutil.Truncate(iv.Start)
		iv.End = dateutil.Truncate(iv.End)
		if iv.End.Before(iv.Start) {
			iv.End = iv.Start
		}
		assignments[i] = calendar.LaneAssignment{LaneInterval: iv}
	}

	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].Start.Before(assignments[j].Start)
	})

	var laneEnds []time.Time
	for i := range assignments {
		lane := -1
		for l, end := range laneEnds {
			if end.Before(assignments[i].Start) {
				lane = l
				break
			}
		}
		if lane == -1 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, time.Time{})
		}
		laneEnds[lane] = assignments[i].End
		assignments[i].Lane = lane
	}

	return assignments
}

// LaneCount returns how many lanes assignments use.
func LaneCount(assignments []calendar.LaneAssignment) int {
	count := 0
	for _, a := range assignments {
		if a.Lane+1 > count {
			count = a.Lane + 1
		}
	}
	return count
}
