package commands

import (
	"context"
	"strings"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"

	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/notify"
)

var helpStrings = make(map[string]string)
var staffHelpStrings = make(map[string]string)
var commandsMap = make(map[string]commandFunc)

type commandFunc func(context.Context, *discordgo.Session, *discordgo.MessageCreate)

// Wired once by Register, read-only afterwards.
var (
	cfg      *config.Flights
	notifier *notify.Notifier
)

func command(name string, helpMessage string, function commandFunc, staff bool) {
	if staff {
		staffHelpStrings[name] = helpMessage
	} else {
		helpStrings[name] = helpMessage
	}
	commandsMap[name] = function
}

// Register commands
func Register(s *discordgo.Session, c *config.Flights, n *notify.Notifier) {
	cfg = c
	notifier = n

	command("ping", "pong!", ping, false)
	command("help", "displays this message", help, false)
	command(
		"flight",
		"flight scheduling commands: \n\t!flight create\n\t!flight start <event link>\n\t!flight cancel <event id>",
		flight,
		true,
	)

	s.AddHandler(messageCreate)
}

// Called whenever a message is sent in a server the bot has access to
func messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.Bot {
		return
	}
	// A reply to an in-progress prompt is consumed before command dispatch
	// so answers like "cancel" are never treated as commands.
	if deliverReply(m) {
		return
	}
	prefix := viper.GetString("bot.prefix")
	for k, v := range commandsMap {
		if !(m.Content == prefix+k || strings.HasPrefix(m.Content, prefix+k+" ")) {
			continue
		}
		ctx := context.WithValue(context.Background(), log.Key, log.Fields{
			"author_id":  m.Author.ID,
			"channel_id": m.ChannelID,
			"guild_id":   m.GuildID,
			"command":    k,
		})
		log.WithContext(ctx).Info("invoking command")
		v(ctx, s, m)
	}
}
