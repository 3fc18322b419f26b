package calendar

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	appLog "github.com/Tiliavir/trivial-day-planner/internal/log"
	"github.com/Tiliavir/trivial-day-planner/internal/model"
)

// maxOccurrencesPerEvent caps RRULE expansion for a single VEVENT.
const maxOccurrencesPerEvent = 500

// ImportOptions bounds an ICS import.
type ImportOptions struct {
	// From and To define the inclusive window occurrences must start in.
	From time.Time
	To   time.Time
	// Location is the display zone. Nil means time.Local.
	Location *time.Location
}

type vevent struct {
	uid      string
	summary  string
	start    time.Time
	end      time.Time
	allDay   bool
	rrule    string
	exdates  []time.Time
	override *time.Time
}

// ParseICS reads a local iCalendar stream and returns the events, with
// recurrences expanded, whose start lies inside the window. The result is
// ordered by start time.
func ParseICS(r io.Reader, opts ImportOptions) ([]model.Event, error) {
	if opts.To.Before(opts.From) {
		return nil, errors.New("ics: window end is before start")
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parsing calendar: %w", err)
	}

	var base []vevent
	overrides := map[string][]vevent{}
	for _, comp := range cal.Events() {
		ev, skip, perr := readVEvent(comp)
		if perr != nil {
			appLog.Warn("ics: skipping vevent", "err", perr)
			continue
		}
		if skip {
			continue
		}
		if ev.override != nil {
			overrides[ev.uid] = append(overrides[ev.uid], ev)
			continue
		}
		base = append(base, ev)
	}

	var out []model.Event
	for _, ev := range base {
		out = append(out, expand(ev, overrides[ev.uid], opts.From, opts.To, loc)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	appLog.Info("ics: import completed", "vevents", len(base), "occurrences", len(out))
	return out, nil
}

func readVEvent(ve *ical.VEvent) (vevent, bool, error) {
	var ev vevent

	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		return ev, true, nil
	}

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		ev.uid = p.Value
	} else {
		ev.uid = uuid.NewString()
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, false, fmt.Errorf("uid %s: DTSTART: %w", ev.uid, err)
	}
	ev.start = start
	end, err := ve.GetEndAt()
	if err != nil || end.Before(start) {
		end = start
	}
	ev.end = end

	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if !strings.Contains(p.Value, "T") {
			ev.allDay = true
		}
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			ev.allDay = true
		}
	}
	if ev.allDay && !end.After(start) {
		ev.end = start.AddDate(0, 0, 1)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(part), start.Location()); err == nil {
				ev.exdates = append(ev.exdates, t)
			}
		}
	}
	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value, start.Location()); err == nil {
			ev.override = &t
		}
	}
	return ev, false, nil
}

func expand(ev vevent, overrides []vevent, from, to time.Time, loc *time.Location) []model.Event {
	if ev.rrule == "" {
		if ev.start.Before(from) || ev.start.After(to) {
			return nil
		}
		return []model.Event{toEvent(ev, ev.start, ev.end, loc)}
	}

	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		appLog.Warn("ics: bad RRULE", "uid", ev.uid, "rrule", ev.rrule, "err", err)
		return nil
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exdates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	starts := set.Between(from.In(ev.start.Location()), to.In(ev.start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		appLog.Warn("ics: truncated recurrence", "uid", ev.uid, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	length := ev.end.Sub(ev.start)
	out := make([]model.Event, 0, len(starts))
	for _, s := range starts {
		occ, occStart, occEnd := ev, s, s.Add(length)
		for _, o := range overrides {
			if o.override.Equal(s) {
				occ, occStart, occEnd = o, o.start, o.end
				break
			}
		}
		out = append(out, toEvent(occ, occStart, occEnd, loc))
	}
	return out
}

func toEvent(ev vevent, start, end time.Time, loc *time.Location) model.Event {
	start = start.In(loc)
	return model.Event{
		ID:     ev.uid + "@" + start.Format(time.RFC3339),
		Title:  ev.summary,
		Start:  start,
		End:    end.In(loc),
		AllDay: ev.allDay,
	}
}

// parseICSTime handles the DATE, floating DATE-TIME and UTC forms used by
// EXDATE and RECURRENCE-ID.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
