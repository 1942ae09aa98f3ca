package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/flights"
	"github.com/EtihadVA/discord-bot/notify"
)

type sentMessage struct {
	channelID string
	content   string
	id        string
}

type sentEmbed struct {
	channelID string
	emb       *discordgo.MessageEmbed
}

type fakeStartSession struct {
	mu sync.Mutex

	event      *discordgo.GuildScheduledEvent
	eventErr   error
	channelErr error
	deleteErr  error

	requestedEventID string
	ops              []string // "send" and "delete" entries in call order
	sent             []sentMessage
	deleted          []string
	embeds           []sentEmbed
}

func (f *fakeStartSession) GuildScheduledEvent(guildID, eventID string, userCount bool, options ...discordgo.RequestOption) (*discordgo.GuildScheduledEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestedEventID = eventID
	return f.event, f.eventErr
}

func (f *fakeStartSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeStartSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := sentMessage{channelID: channelID, content: content, id: fmt.Sprintf("msg-%d", len(f.sent)+1)}
	f.sent = append(f.sent, msg)
	f.ops = append(f.ops, "send")
	return &discordgo.Message{ID: msg.id, ChannelID: channelID}, nil
}

func (f *fakeStartSession) ChannelMessageSendEmbed(channelID string, emb *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, sentEmbed{channelID: channelID, emb: emb})
	return &discordgo.Message{}, nil
}

func (f *fakeStartSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "delete")
	f.deleted = append(f.deleted, messageID)
	return f.deleteErr
}

func (f *fakeStartSession) opCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ops)
}

func (f *fakeStartSession) snapshot() ([]string, []sentMessage, []string, []sentEmbed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...),
		append([]sentMessage(nil), f.sent...),
		append([]string(nil), f.deleted...),
		append([]sentEmbed(nil), f.embeds...)
}

func setupFlightTest(t *testing.T) {
	t.Helper()
	cfg = &config.Flights{
		GuildID:        "guild",
		RequiredRoleID: "role",
		Channels:       config.Channels{Announcements: "announce"},
		CheckinOffset:  15 * time.Minute,
	}
	notifier = notify.New()
	t.Cleanup(func() {
		notifier.Close()
		cfg = nil
		notifier = nil
	})
}

func opsMessage() *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "ops",
		Author:    &discordgo.User{ID: "user", Username: "captain"},
	}}
}

func startableEvent(start time.Time) *discordgo.GuildScheduledEvent {
	details := flights.Details{
		Number:    "EA301",
		Departure: "Edinburgh",
		Arrival:   "Madeira",
		Aircraft:  "A320neo",
	}
	return &discordgo.GuildScheduledEvent{
		ID:                 "ev",
		Name:               details.EventName(),
		Description:        details.Description(),
		ScheduledStartTime: start,
		EntityMetadata:     discordgo.GuildScheduledEventEntityMetadata{Location: "https://www.roblox.com/games/123"},
	}
}

func TestFlightStartAnnouncesThenCloses(t *testing.T) {
	setupFlightTest(t)
	// Lock time already passed, so the delayed task fires immediately.
	fake := &fakeStartSession{event: startableEvent(time.Now().Add(-20 * time.Minute))}

	flightStart(context.Background(), fake, opsMessage(), "https://discord.com/events/guild/ev")

	require.Eventually(t, func() bool { return fake.opCount() >= 3 }, time.Second, 10*time.Millisecond)
	ops, sent, deleted, embeds := fake.snapshot()

	// Open announcement, then delete, then closed announcement.
	require.Equal(t, []string{"send", "delete", "send"}, ops)
	require.Len(t, sent, 2)
	assert.Equal(t, "announce", sent[0].channelID)
	assert.Contains(t, sent[0].content, "Check-in Now Open")
	assert.Contains(t, sent[0].content, "**0 minutes**")
	assert.Contains(t, sent[0].content, "https://www.roblox.com/games/123")

	require.Len(t, deleted, 1)
	assert.Equal(t, sent[0].id, deleted[0])

	assert.Equal(t, "announce", sent[1].channelID)
	assert.Contains(t, sent[1].content, "Check-in Closed")
	assert.Contains(t, sent[1].content, "**EA301**")

	assert.Equal(t, "ev", fake.requestedEventID)

	// The command replied success without waiting on the delayed task.
	require.NotEmpty(t, embeds)
	assert.Equal(t, "ops", embeds[0].channelID)
	assert.Equal(t, "Flight Started", embeds[0].emb.Title)
}

func TestFlightStartToleratesDeleteFailure(t *testing.T) {
	setupFlightTest(t)
	fake := &fakeStartSession{
		event:     startableEvent(time.Now().Add(-time.Hour)),
		deleteErr: errors.New("unknown message"),
	}

	flightStart(context.Background(), fake, opsMessage(), "ev")

	require.Eventually(t, func() bool { return fake.opCount() >= 3 }, time.Second, 10*time.Millisecond)
	_, sent, _, _ := fake.snapshot()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[1].content, "Check-in Closed")
}

func TestFlightStartParseFailureSendsNothing(t *testing.T) {
	setupFlightTest(t)
	fake := &fakeStartSession{event: &discordgo.GuildScheduledEvent{
		ID:                 "ev",
		Name:               "hand made",
		Description:        "Come fly with us!",
		ScheduledStartTime: time.Now().Add(time.Hour),
	}}

	flightStart(context.Background(), fake, opsMessage(), "ev")

	_, sent, _, embeds := fake.snapshot()
	assert.Empty(t, sent)
	assert.Equal(t, 0, notifier.Outstanding())
	require.Len(t, embeds, 1)
	assert.Equal(t, "ops", embeds[0].channelID)
	assert.Contains(t, embeds[0].emb.Description, "Failed to parse event description")
}

func TestFlightStartRequiresLink(t *testing.T) {
	setupFlightTest(t)
	fake := &fakeStartSession{}

	flightStart(context.Background(), fake, opsMessage(), "")

	_, sent, _, embeds := fake.snapshot()
	assert.Empty(t, sent)
	assert.Empty(t, fake.requestedEventID)
	require.Len(t, embeds, 1)
	assert.Contains(t, embeds[0].emb.Description, "Provide an event link!")
}

func TestFlightStartInvalidEvent(t *testing.T) {
	setupFlightTest(t)
	fake := &fakeStartSession{eventErr: errors.New("status 404")}

	flightStart(context.Background(), fake, opsMessage(), "ev")

	_, sent, _, embeds := fake.snapshot()
	assert.Empty(t, sent)
	require.Len(t, embeds, 1)
	assert.Contains(t, embeds[0].emb.Description, "Invalid link or event!")
}

func TestFlightStartMissingAnnouncementChannel(t *testing.T) {
	setupFlightTest(t)
	fake := &fakeStartSession{
		event:      startableEvent(time.Now().Add(time.Hour)),
		channelErr: errors.New("status 404"),
	}

	flightStart(context.Background(), fake, opsMessage(), "ev")

	_, sent, _, embeds := fake.snapshot()
	assert.Empty(t, sent)
	assert.Equal(t, 0, notifier.Outstanding())
	require.Len(t, embeds, 1)
	assert.Contains(t, embeds[0].emb.Description, "Announcement channel not found.")
}
