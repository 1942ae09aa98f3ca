package commands

import (
	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"

	"github.com/EtihadVA/discord-bot/embed"
)

const (
	colorNeutral = 0xE5E1DE
	colorError   = 0xFF0000
	colorSuccess = 0x00FF00
)

func hasRequiredRole(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	for _, role := range member.Roles {
		if role == cfg.RequiredRoleID {
			return true
		}
	}
	return false
}

func errorEmbed(title, description string) *discordgo.MessageEmbed {
	return embed.NewEmbed().SetTitle(title).SetDescription(description).SetColor(colorError).MessageEmbed
}

func successEmbed(title, description string) *discordgo.MessageEmbed {
	return embed.NewEmbed().SetTitle(title).SetDescription(description).SetColor(colorSuccess).MessageEmbed
}

// embedSender is satisfied by *discordgo.Session and by the narrower
// command session interfaces.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, emb *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// diagnostics posts a best-effort note about an operator action to the
// ops log channel.
func diagnostics(s embedSender, action, detail string) {
	if cfg.Channels.Diagnostics == "" {
		return
	}
	emb := embed.NewEmbed().SetTitle("Logging").SetColor(colorNeutral).AddField(action, detail)
	if _, err := s.ChannelMessageSendEmbed(cfg.Channels.Diagnostics, emb.MessageEmbed); err != nil {
		log.WithError(err).Warn("Failed to write diagnostics entry")
	}
}
