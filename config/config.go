package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Channels used by the flight module.
type Channels struct {
	Announcements string `json:"announcements"` // check-in open/closed messages
	Diagnostics   string `json:"diagnostics"`   // bot action log
}

// Webhook identifies the summary webhook and the single message it overwrites.
type Webhook struct {
	ID        string
	Token     string
	MessageID string
}

// Flights is the runtime configuration for the flight module. It is
// built once at startup and handed to each component at construction;
// nothing reads it back out of viper afterwards.
type Flights struct {
	GuildID         string
	RequiredRoleID  string
	Channels        Channels
	Webhook         Webhook
	RefreshInterval time.Duration
	CheckinOffset   time.Duration
	PageSize        int
}

// InitConfig sets up viper.
func InitConfig() error {
	initDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	printAll()
	return nil
}

// LoadFlights builds the typed flight configuration from viper.
func LoadFlights() (*Flights, error) {
	webhook, err := parseWebhookURL(viper.GetString("flights.webhook.url"))
	if err != nil {
		return nil, err
	}
	webhook.MessageID = viper.GetString("flights.webhook.message")

	return &Flights{
		GuildID:        viper.GetString("discord.guild"),
		RequiredRoleID: viper.GetString("flights.role"),
		Channels: Channels{
			Announcements: viper.GetString("flights.channels.announcements"),
			Diagnostics:   viper.GetString("flights.channels.diagnostics"),
		},
		Webhook:         webhook,
		RefreshInterval: time.Duration(viper.GetInt("flights.refresh.minutes")) * time.Minute,
		CheckinOffset:   time.Duration(viper.GetInt("flights.checkin.offset")) * time.Minute,
		PageSize:        viper.GetInt("flights.page.size"),
	}, nil
}

// parseWebhookURL splits a Discord webhook URL of the form
// .../api/webhooks/<id>/<token> into its id and token.
func parseWebhookURL(url string) (Webhook, error) {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	if len(parts) < 2 {
		return Webhook{}, fmt.Errorf("malformed webhook url %q", url)
	}
	return Webhook{ID: parts[len(parts)-2], Token: parts[len(parts)-1]}, nil
}

func printAll() {
	fmt.Println("Startup variables:")
	for k, v := range viper.AllSettings() {
		fmt.Println(k + ":")
		for sk, sv := range v.(map[string]interface{}) {
			if strval, ok := sv.(string); ok {
				if len(strval) > 5 {
					fmt.Printf("%s: %s...\n", sk, strval[:5])
				} else {
					fmt.Printf("%s: %s\n", sk, strval)
				}
			} else {
				fmt.Printf("%s: %v\n", sk, sv)
			}
		}
	}
}
