package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	"github.com/spf13/viper"

	"github.com/EtihadVA/discord-bot/api"
	"github.com/EtihadVA/discord-bot/commands"
	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/notify"
	"github.com/EtihadVA/discord-bot/prometheus"
	"github.com/EtihadVA/discord-bot/schedule"
	"github.com/EtihadVA/discord-bot/status"
)

var production *bool

func main() {
	// Check for flags
	production = flag.Bool("p", false, "enables production with json logging")
	flag.Parse()
	if *production {
		log.InitJSONLogger(&log.Config{Output: os.Stdout})
	} else {
		log.InitSimpleLogger(&log.Config{Output: os.Stdout})
	}

	// Setup viper
	exitError(config.InitConfig())
	cfg, err := config.LoadFlights()
	exitError(err)

	// Discord connection
	token := viper.GetString("discord.token")
	session, err := discordgo.New("Bot " + token)
	exitError(err)
	session.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	notifier := notify.New()
	commands.Register(session, cfg, notifier)

	// Open websocket
	exitError(session.Open())

	// Run the REST API and metrics exporter in different goroutines
	go api.Run(session, cfg)
	go prometheus.CreateExporter()

	// Update the bot status periodically
	go status.Status(session, cfg)

	// Keep the flight summary webhook fresh
	refresher := schedule.NewRefresher(session, cfg)
	if err := refresher.VerifySink(); err != nil {
		log.WithError(err).Warn("Summary webhook message unreachable, refreshes may fail")
	}
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.StartAsync()
	scheduler.Every(int(cfg.RefreshInterval.Minutes())).Minutes().StartImmediately().Do(refresher.Tick)

	// Maintain connection until a SIGTERM, then cleanly exit
	log.Info("Bot is Running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Info("Cleanly exiting")
	scheduler.Stop()
	notifier.Close()
	session.Close()
}

func exitError(err error) {
	if err != nil {
		log.WithError(err).Error("Failed to start bot")
		os.Exit(1)
	}
}
