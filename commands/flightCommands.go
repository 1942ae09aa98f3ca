package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"

	"github.com/EtihadVA/discord-bot/flights"
	"github.com/EtihadVA/discord-bot/prometheus"
)

// starterSession is the slice of the Discord API the start flow
// touches. *discordgo.Session satisfies it.
type starterSession interface {
	GuildScheduledEvent(guildID, eventID string, userCount bool, options ...discordgo.RequestOption) (*discordgo.GuildScheduledEvent, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, emb *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// flight dispatches the !flight subcommands. All of them are gated on
// the operations role.
func flight(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if !hasRequiredRole(m.Member) {
		s.ChannelMessageSend(m.ChannelID, "You don't have permission to use this command.")
		return
	}

	args := strings.Fields(m.Content)
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	arg := ""
	if len(args) > 2 {
		arg = args[2]
	}

	switch sub {
	case "create":
		flightCreate(ctx, s, m)
	case "start":
		flightStart(ctx, s, m, arg)
	case "cancel":
		flightCancel(ctx, s, m, arg)
	default:
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Usage:\n```%s```", staffHelpStrings["flight"]))
	}
}

// flightCreate walks the operator through the creation flow and submits
// the scheduled event. Nothing is written externally until every field
// has been collected.
func flightCreate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	number, ok := askText(ctx, s, m, "Flight Number", "Enter the flight number (e.g., EA301).")
	if !ok {
		return
	}
	rawTime, ok := askText(ctx, s, m, "Flight Time", "Enter the flight time as a Unix timestamp (e.g., 1727780400).")
	if !ok {
		return
	}
	flightTime, err := strconv.ParseInt(strings.TrimSpace(rawTime), 10, 64)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Flight time must be a Unix timestamp."))
		return
	}
	aircraft, ok := askText(ctx, s, m, "Aircraft Type", "Enter the aircraft type (e.g., A320neo).")
	if !ok {
		return
	}
	departure, ok := askText(ctx, s, m, "Departure", "Enter the departure airport (e.g., Edinburgh).")
	if !ok {
		return
	}
	arrival, ok := askText(ctx, s, m, "Arrival", "Enter the arrival airport (e.g., Madeira).")
	if !ok {
		return
	}
	link, ok := askText(ctx, s, m, "Roblox Link", "Enter the Roblox game link.")
	if !ok {
		return
	}

	details := flights.Details{
		Number:    number,
		Departure: departure,
		Arrival:   arrival,
		Aircraft:  aircraft,
		Link:      link,
	}
	start := time.Unix(flightTime, 0).UTC()
	end := start.Add(flights.EventDuration)

	_, err = s.GuildScheduledEventCreate(cfg.GuildID, &discordgo.GuildScheduledEventParams{
		Name:               details.EventName(),
		Description:        details.Description(),
		ScheduledStartTime: &start,
		ScheduledEndTime:   &end,
		PrivacyLevel:       discordgo.GuildScheduledEventPrivacyLevelGuildOnly,
		EntityType:         discordgo.GuildScheduledEventEntityTypeExternal,
		EntityMetadata:     &discordgo.GuildScheduledEventEntityMetadata{Location: details.Link},
	})
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Failed to create scheduled event")
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Failed to create flight", err.Error()))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, successEmbed("✅ Flight created successfully!", ""))
	prometheus.FlightCreated()
	diagnostics(s, "Create Flight", fmt.Sprintf("%s created flight %s", m.Author.String(), details.Number))
}

// flightStart announces check-in for an event and schedules the closed
// announcement for the lock time. The command returns as soon as the
// open message is up; the delayed task runs on its own.
func flightStart(ctx context.Context, s starterSession, m *discordgo.MessageCreate, link string) {
	if link == "" {
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Provide an event link!"))
		return
	}

	eventID := flights.EventIDFromLink(link)
	ev, err := s.GuildScheduledEvent(cfg.GuildID, eventID, false)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Failed to fetch scheduled event")
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Invalid link or event!"))
		return
	}

	details, err := flights.ParseDescription(ev.Description)
	if err != nil {
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Failed to parse event description for flight info."))
		return
	}
	if ev.EntityMetadata.Location != "" {
		details.Link = ev.EntityMetadata.Location
	}

	now := time.Now().UTC()
	lockTime := flights.LockTime(ev.ScheduledStartTime, cfg.CheckinOffset)
	minutesUntilLock := flights.MinutesUntilLock(lockTime, now)

	if _, err := s.Channel(cfg.Channels.Announcements); err != nil {
		log.WithContext(ctx).WithError(err).Error("Announcement channel unavailable")
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Announcement channel not found."))
		return
	}

	open, err := s.ChannelMessageSend(cfg.Channels.Announcements, flights.OpenAnnouncement(details, minutesUntilLock))
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Failed to send check-in open message")
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Failed to announce check-in."))
		return
	}

	notifier.AfterFunc(time.Until(lockTime), func() {
		// The open message may already be gone; that is fine.
		if err := s.ChannelMessageDelete(cfg.Channels.Announcements, open.ID); err != nil {
			log.WithError(err).Warn("Failed to delete check-in open message")
		}
		if _, err := s.ChannelMessageSend(cfg.Channels.Announcements, flights.ClosedAnnouncement(details)); err != nil {
			log.WithError(err).Error("Failed to send check-in closed message")
			return
		}
		prometheus.CheckinClosed()
	})

	s.ChannelMessageSendEmbed(m.ChannelID, successEmbed("Flight Started", fmt.Sprintf("Flight '%s' started.", ev.Name)))
	prometheus.FlightStarted()
	diagnostics(s, "Start Flight", fmt.Sprintf("%s started %s", m.Author.String(), ev.Name))
}

func flightCancel(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, flightID string) {
	if flightID == "" {
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Provide a flight ID!"))
		return
	}

	if err := s.GuildScheduledEventDelete(cfg.GuildID, flightID); err != nil {
		log.WithContext(ctx).WithError(err).Error("Failed to delete scheduled event")
		s.ChannelMessageSendEmbed(m.ChannelID, errorEmbed("Error", "Failed to cancel flight."))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, successEmbed("Success", fmt.Sprintf("Flight %s canceled.", flightID)))
	prometheus.FlightCancelled()
	diagnostics(s, "Cancel Flight", fmt.Sprintf("%s canceled flight %s", m.Author.String(), flightID))
}
