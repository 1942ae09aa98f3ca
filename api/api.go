package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Strum355/log"
	"github.com/bwmarrin/discordgo"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/viper"

	"github.com/EtihadVA/discord-bot/config"
	"github.com/EtihadVA/discord-bot/flights"
)

type returnFlight struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartTime   int64  `json:"start_time"`
	Location    string `json:"location"`
}

var (
	cached  *cache.Cache
	session *discordgo.Session
	cfg     *config.Flights
)

// Run the REST API
func Run(s *discordgo.Session, c *config.Flights) {
	cached = cache.New(5*time.Minute, 10*time.Minute)
	session = s
	cfg = c

	mux := http.NewServeMux()
	mux.HandleFunc("/flights", getFlights)

	if err := http.ListenAndServe(fmt.Sprintf(":%d", viper.GetInt("api.port")), mux); err != nil {
		log.WithError(err).Error("Flight API stopped")
	}
}

func getFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := viper.GetInt("api.flight_query_limit")
	queryAmount, exists := query["q"]
	if !exists || len(query) == 0 {
		http.Error(w, "Please add the parameter 'q'", 403)
		return
	}
	amount, err := strconv.Atoi(queryAmount[0])
	if err != nil || amount < 0 || amount > limit {
		http.Error(w, "Please provide an int as 'q's value", 403)
		return
	}

	var upcoming []*discordgo.GuildScheduledEvent
	cachedFlights, found := cached.Get("flights")
	if found {
		upcoming = cachedFlights.([]*discordgo.GuildScheduledEvent)
	} else {
		events, err := session.GuildScheduledEvents(cfg.GuildID, false)
		if err != nil {
			log.WithError(err).Error("Error querying scheduled events for api")
			http.Error(w, "Upstream error", 502)
			return
		}
		upcoming = flights.Upcoming(events, time.Now())
		cached.Set("flights", upcoming, cache.DefaultExpiration)
	}

	w.Header().Set("content-type", "application/json")
	returnFlights := []returnFlight{}
	for i, e := range upcoming {
		if i == amount {
			break
		}
		f := returnFlight{
			Name:        e.Name,
			Description: e.Description,
			StartTime:   e.ScheduledStartTime.Unix(),
		}
		if e.EntityMetadata.Location != "" {
			f.Location = e.EntityMetadata.Location
		}
		returnFlights = append(returnFlights, f)
	}

	b, err := json.Marshal(returnFlights)
	if err != nil {
		log.WithFields(log.Fields{"flights": returnFlights}).WithError(err).Error("Error marshalling flights")
		return
	}
	w.Write(b)
}
