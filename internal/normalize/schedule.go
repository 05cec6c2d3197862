package normalize

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"course-compass/internal/domain"
)

var leadingIntRe = regexp.MustCompile(`^\s*(\d+)`)

// ParseDurationWeeks reads the leading integer of a free-text duration such
// as "8 weeks". It returns DefaultDurationWeeks when there is none or it is 0,
// and caps larger values at MaxDurationWeeks.
func ParseDurationWeeks(duration string) int {
	m := leadingIntRe.FindStringSubmatch(duration)
	if m == nil {
		return DefaultDurationWeeks
	}
	weeks, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return MaxDurationWeeks
	}
	if err != nil || weeks <= 0 {
		return DefaultDurationWeeks
	}
	return min(weeks, MaxDurationWeeks)
}

// ScheduleMilestones spreads durationWeeks evenly over the milestones.
// Each milestone i (1-based) is due anchor + 7*ceil(durationWeeks/len)*i days,
// so deadlines strictly increase and the last one may overshoot the duration.
// Only the calendar date of anchor is used.
func ScheduleMilestones(milestones []domain.Milestone, durationWeeks int, anchor time.Time) []domain.Milestone {
	if len(milestones) == 0 {
		return nil
	}
	if durationWeeks <= 0 {
		durationWeeks = DefaultDurationWeeks
	}
	durationWeeks = min(durationWeeks, MaxDurationWeeks)
	weeksPerMilestone := (durationWeeks + len(milestones) - 1) / len(milestones)
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	scheduled := make([]domain.Milestone, len(milestones))
	for i, m := range milestones {
		m.Deadline = day.AddDate(0, 0, 7*weeksPerMilestone*(i+1)).Format(DateLayout)
		scheduled[i] = m
	}
	return scheduled
}
