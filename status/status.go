package status

import (
	"fmt"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"

	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/flights"
)

// Status keeps the bot presence showing how many flights are on the
// guild calendar.
func Status(s *discordgo.Session, cfg *config.Flights) {
	for {
		upcomingFlightCount(s, cfg)
		wait := time.After(time.Minute)
		<-wait
	}
}

func upcomingFlightCount(s *discordgo.Session, cfg *config.Flights) {
	events, err := s.GuildScheduledEvents(cfg.GuildID, false)
	if err != nil {
		log.Error("Failed to query scheduled events for status: " + err.Error())
		time.Sleep(time.Hour)
		return
	}
	upcoming := flights.Upcoming(events, time.Now())
	plural := "flights"
	if len(upcoming) == 1 {
		plural = "flight"
	}
	s.UpdateGameStatus(0, fmt.Sprintf("%d upcoming %s", len(upcoming), plural))
}
