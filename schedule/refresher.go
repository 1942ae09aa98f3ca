// Package schedule keeps the summary webhook message in sync with the
// guild's upcoming flights.
package schedule

import (
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/matryer/try"

	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/embed"
	"github.com/EtihadVA/discord-bot/flights"
	"github.com/EtihadVA/discord-bot/prometheus"
)

const summaryColor = 0xE5E1DE

// session is the slice of the Discord API the refresher touches.
// *discordgo.Session satisfies it.
type session interface {
	GuildScheduledEvents(guildID string, userCount bool, options ...discordgo.RequestOption) ([]*discordgo.GuildScheduledEvent, error)
	WebhookMessage(webhookID, token, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	WebhookMessageEdit(webhookID, token, messageID string, data *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Refresher republishes the upcoming-flight summary on a fixed
// interval. Every failure inside a tick is soft: it is logged and the
// next tick is the retry.
type Refresher struct {
	session session
	cfg     *config.Flights
}

// NewRefresher ...
func NewRefresher(s session, cfg *config.Flights) *Refresher {
	return &Refresher{session: s, cfg: cfg}
}

// VerifySink checks that the summary message this component overwrites
// actually exists, retrying transient failures a few times. Run it once
// at startup.
func (r *Refresher) VerifySink() error {
	return try.Do(func(attempt int) (bool, error) {
		_, err := r.session.WebhookMessage(r.cfg.Webhook.ID, r.cfg.Webhook.Token, r.cfg.Webhook.MessageID)
		if err != nil {
			time.Sleep(time.Second)
		}
		return attempt < 3, err
	})
}

// Tick runs one refresh cycle: fetch, filter, render, publish. Each
// tick is independent and idempotent against the same external state.
func (r *Refresher) Tick() {
	events, err := r.session.GuildScheduledEvents(r.cfg.GuildID, false)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch scheduled events")
		prometheus.RefreshFailed()
		return
	}

	upcoming := flights.Upcoming(events, time.Now())
	emb := SummaryEmbed(upcoming, r.cfg.PageSize)

	_, err = r.session.WebhookMessageEdit(r.cfg.Webhook.ID, r.cfg.Webhook.Token, r.cfg.Webhook.MessageID, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{emb},
	})
	if err != nil {
		log.WithError(err).Warn("Failed to update flight summary webhook")
		prometheus.RefreshFailed()
		return
	}
	prometheus.Refreshed()

	if r.cfg.Channels.Diagnostics != "" {
		if _, err := r.session.ChannelMessageSend(r.cfg.Channels.Diagnostics, "Updated flight schedule webhook."); err != nil {
			log.WithError(err).Warn("Failed to send diagnostics note")
		}
	}
}

// SummaryEmbed renders at most pageSize upcoming flights, or the
// placeholder when none are scheduled. Input order is preserved.
func SummaryEmbed(upcoming []*discordgo.GuildScheduledEvent, pageSize int) *discordgo.MessageEmbed {
	emb := embed.NewEmbed().
		SetTitle("Upcoming Flights").
		SetColor(summaryColor).
		SetFooter("Updates every 5 min")

	if len(upcoming) == 0 {
		return emb.SetDescription("No flights scheduled.").MessageEmbed
	}
	for i, e := range upcoming {
		if i == pageSize {
			break
		}
		value := e.Description
		if value == "" {
			value = "No description provided."
		}
		emb.AddField(e.Name, value)
	}
	return emb.MessageEmbed
}
