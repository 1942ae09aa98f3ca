package flights

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// EventDuration is how long a flight occupies the guild calendar.
const EventDuration = 45 * time.Minute

// Details holds the free-text fields a flight is created from. Later
// announcements are rebuilt from the same fields by parsing them back
// out of the event description.
type Details struct {
	Number    string
	Departure string
	Arrival   string
	Aircraft  string
	Link      string
}

const (
	tailEmote = "<:Tail:1375059430269517885>"
	starEmote = "<:Star:1375535064141795460>"
)

// EventName is the scheduled event title shown on the guild calendar.
func (d Details) EventName() string {
	return fmt.Sprintf("%s | %s - %s", d.Number, d.Departure, d.Arrival)
}

// Description renders the invitation text embedded in a scheduled
// event. ParseDescription must be able to recover the fields from it,
// so this wording and descriptionPattern change together.
func (d Details) Description() string {
	return fmt.Sprintf(
		tailEmote+" **Etihad Airways** cordially invites you to attend Flight **%s**, "+
			"operating from **%s** to **%s** aboard a **%s**.\n\n"+
			starEmote+" All passengers are requested to review the flight itinerary in `#itinerary` "+
			"prior to departure to ensure a smooth and professional operation.",
		d.Number, d.Departure, d.Arrival, d.Aircraft,
	)
}

var descriptionPattern = regexp.MustCompile(
	`(?s)<:Tail:\d+>\s+\*\*Etihad Airways\*\* cordially invites you to attend Flight\s+\*\*(.+?)\*\*, ` +
		`operating from\s+\*\*(.+?)\*\* to\s+\*\*(.+?)\*\* aboard`,
)

// ErrNoMatch is returned for event descriptions that were not produced
// by Details.Description. Hand-edited events are rejected rather than
// guessed at.
var ErrNoMatch = errors.New("description does not match the flight invitation template")

// ParseDescription extracts the flight number, departure and arrival
// back out of an event description.
func ParseDescription(description string) (Details, error) {
	m := descriptionPattern.FindStringSubmatch(description)
	if m == nil {
		return Details{}, ErrNoMatch
	}
	return Details{
		Number:    strings.TrimSpace(m[1]),
		Departure: strings.TrimSpace(m[2]),
		Arrival:   strings.TrimSpace(m[3]),
	}, nil
}

// EventIDFromLink returns the trailing path segment of a scheduled
// event link, e.g. https://discord.com/events/<guild>/<event>.
func EventIDFromLink(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// LockTime is the instant check-in closes for a flight departing at start.
func LockTime(start time.Time, offset time.Duration) time.Time {
	return start.Add(offset)
}

// MinutesUntilLock is the number of whole minutes from now until lock,
// clamped at zero for lock times already in the past.
func MinutesUntilLock(lock, now time.Time) int {
	m := int(lock.Sub(now).Minutes())
	if m < 0 {
		return 0
	}
	return m
}

// Upcoming filters out events that have already started and returns the
// remainder ordered ascending by start time. Both sides of the
// comparison are taken in UTC. The sort is stable so fetch order breaks
// ties.
func Upcoming(events []*discordgo.GuildScheduledEvent, now time.Time) []*discordgo.GuildScheduledEvent {
	now = now.UTC()
	upcoming := make([]*discordgo.GuildScheduledEvent, 0, len(events))
	for _, e := range events {
		if e.ScheduledStartTime.UTC().After(now) {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduledStartTime.Before(upcoming[j].ScheduledStartTime)
	})
	return upcoming
}
