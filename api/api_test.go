package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EtihadVA/discord-bot/config"
)

func setupAPITest(t *testing.T) {
	t.Helper()
	viper.Set("api.flight_query_limit", 20)
	cached = cache.New(time.Minute, time.Minute)
	cfg = &config.Flights{GuildID: "guild"}
	t.Cleanup(func() {
		cached = nil
		cfg = nil
	})
}

func TestGetFlightsRejectsBadQuery(t *testing.T) {
	setupAPITest(t)

	tests := []struct {
		name   string
		target string
	}{
		{"missing q", "/flights"},
		{"not an int", "/flights?q=two"},
		{"negative", "/flights?q=-1"},
		{"over the limit", "/flights?q=100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			getFlights(rec, httptest.NewRequest("GET", tt.target, nil))
			assert.Equal(t, 403, rec.Code)
		})
	}
}

func TestGetFlightsServesCachedUpcoming(t *testing.T) {
	setupAPITest(t)
	now := time.Now()
	cached.Set("flights", []*discordgo.GuildScheduledEvent{
		{Name: "first", Description: "a", ScheduledStartTime: now.Add(time.Hour)},
		{Name: "second", Description: "b", ScheduledStartTime: now.Add(2 * time.Hour)},
	}, cache.DefaultExpiration)

	rec := httptest.NewRecorder()
	getFlights(rec, httptest.NewRequest("GET", "/flights?q=1", nil))

	require.Equal(t, 200, rec.Code)
	var got []returnFlight
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Name)
}
