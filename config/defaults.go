package config

import "github.com/spf13/viper"

func initDefaults() {
	// Bot
	viper.SetDefault("bot.prefix", "!")
	viper.SetDefault("bot.version", "development")
	// Discord
	viper.SetDefault("discord.token", "") // GitHub scrapers be like -.-
	viper.SetDefault("discord.guild", "")
	// Flights
	viper.SetDefault("flights.role", "")
	viper.SetDefault("flights.channels.announcements", "")
	viper.SetDefault("flights.channels.diagnostics", "")
	viper.SetDefault("flights.webhook.url", "")
	viper.SetDefault("flights.webhook.message", "")
	viper.SetDefault("flights.refresh.minutes", 5)
	viper.SetDefault("flights.checkin.offset", 15) // minutes after departure
	viper.SetDefault("flights.page.size", 2)
	// Rest API
	viper.SetDefault("api.port", 80)
	viper.SetDefault("api.flight_query_limit", 20)
	// Prometheus exporter
	viper.SetDefault("prom.port", 2112)
}
