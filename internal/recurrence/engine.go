package recurrence

import (
	"sort"
	"time"

	"github.com/marcelopachecouba/sgme/internal/roster"
)

// PlannedMass is one concrete celebration produced by projecting the fixed
// rule set onto a calendar month. MinisterIDs lists the assignees of the
// rules that formed the group, in rule order.
type PlannedMass struct {
	Date        time.Time
	TimeLabel   string
	Community   string
	Required    int
	MinisterIDs []string
}

// Engine projects wildcard-capable fixed rules onto concrete months.
type Engine struct {
	defaultCommunity string
}

// NewEngine builds an engine. Rules whose community field is a wildcard are
// resolved to defaultCommunity when they materialize a mass.
func NewEngine(defaultCommunity string) *Engine {
	return &Engine{defaultCommunity: defaultCommunity}
}

type groupKey struct {
	timeLabel string
	community string
}

// PlanMonth walks every day of the given month and returns the masses the
// rule set calls for, one per (date, time label, community) group. Rules
// matching the same day, time and community share a mass; the mass requires
// as many ministers as the group has rules.
//
// Output order is deterministic: ascending by date, then time label, then
// community.
func (e *Engine) PlanMonth(year int, month time.Month, rules []roster.Slot) []PlannedMass {
	var planned []PlannedMass

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		week := roster.WeekOfMonth(day)
		weekday := roster.DayOfWeek(day)

		groups := make(map[groupKey][]roster.Slot)
		for _, rule := range rules {
			if !rule.MatchesDay(week, weekday) {
				continue
			}
			key := groupKey{
				timeLabel: e.resolveTimeLabel(rule),
				community: e.resolveCommunity(rule),
			}
			groups[key] = append(groups[key], rule)
		}
		if len(groups) == 0 {
			continue
		}

		keys := make([]groupKey, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].timeLabel != keys[j].timeLabel {
				return keys[i].timeLabel < keys[j].timeLabel
			}
			return keys[i].community < keys[j].community
		})

		for _, key := range keys {
			group := groups[key]
			ministerIDs := make([]string, 0, len(group))
			for _, rule := range group {
				ministerIDs = append(ministerIDs, rule.MinisterID)
			}
			planned = append(planned, PlannedMass{
				Date:        day,
				TimeLabel:   key.timeLabel,
				Community:   key.community,
				Required:    len(group),
				MinisterIDs: ministerIDs,
			})
		}
	}

	return planned
}

func (e *Engine) resolveTimeLabel(rule roster.Slot) string {
	if rule.TimeLabel == nil {
		return ""
	}
	return *rule.TimeLabel
}

func (e *Engine) resolveCommunity(rule roster.Slot) string {
	if rule.Community == nil {
		return e.defaultCommunity
	}
	return *rule.Community
}
