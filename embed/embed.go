package embed

import "github.com/bwmarrin/discordgo"

// Embed is a chainable builder over discordgo.MessageEmbed.
type Embed struct {
	*discordgo.MessageEmbed
}

// Discord embed limits.
const (
	LimitTitle       = 256
	LimitDescription = 4096
	LimitFieldName   = 256
	LimitFieldValue  = 1024
	LimitFieldCount  = 25
	LimitFooter      = 2048
)

// NewEmbed returns a new embed object
func NewEmbed() *Embed {
	return &Embed{&discordgo.MessageEmbed{}}
}

// SetTitle ...
func (e *Embed) SetTitle(name string) *Embed {
	if len(name) > LimitTitle {
		name = name[:LimitTitle]
	}
	e.Title = name
	return e
}

// SetDescription ...
func (e *Embed) SetDescription(description string) *Embed {
	if len(description) > LimitDescription {
		description = description[:LimitDescription]
	}
	e.Description = description
	return e
}

// AddField adds a field, truncating name and value to the API limits.
func (e *Embed) AddField(name, value string) *Embed {
	if len(e.Fields) == LimitFieldCount {
		return e
	}
	if len(name) > LimitFieldName {
		name = name[:LimitFieldName]
	}
	if len(value) > LimitFieldValue {
		value = value[:LimitFieldValue]
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
		Name:  name,
		Value: value,
	})
	return e
}

// SetFooter ...
func (e *Embed) SetFooter(text string) *Embed {
	if len(text) > LimitFooter {
		text = text[:LimitFooter]
	}
	e.Footer = &discordgo.MessageEmbedFooter{Text: text}
	return e
}

// SetImage ...
func (e *Embed) SetImage(url string) *Embed {
	e.Image = &discordgo.MessageEmbedImage{URL: url}
	return e
}

// SetColor ...
func (e *Embed) SetColor(color int) *Embed {
	e.Color = color
	return e
}
