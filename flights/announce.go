package flights

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	planeEmote = "<:Plane:1379811896106156052>"
	dashEmote  = "<:Dash:1379811908886204567>"
	linkEmote  = "<:Link:1379811829076856842>"
	lockEmote  = "<:Lock:1379811903332679830>"
	opsEmote   = "<:Tail:1379811826467868804>"
)

var p = message.NewPrinter(language.English)

// OpenAnnouncement is the check-in open message posted when a flight is
// started.
func OpenAnnouncement(d Details, minutesUntilLock int) string {
	return p.Sprintf(
		planeEmote+" **Check-in Now Open**\n"+
			"-# %s\n\n"+
			dashEmote+" **-**\n"+
			"> Attention all passengers flying to **%s** on flight **%s**, check-in is now open and will close in **%d minutes**. "+
			"If you are in need of any assistance throughout your journey, please reach out to a member of staff! Have a good flight.\n\n"+
			linkEmote+" %s\n\n"+
			"|| @everyone @Operations Ping ||",
		d.Departure, d.Arrival, d.Number, minutesUntilLock, d.Link,
	)
}

// ClosedAnnouncement replaces the open message once the lock time passes.
func ClosedAnnouncement(d Details) string {
	return p.Sprintf(
		lockEmote+" **Check-in Closed**\n"+
			"-# %s\n\n"+
			dashEmote+" **-**\n"+
			"> Check-in for flight **%s** to **%s** has now been closed. If you have missed your flight, please attend the next one!\n\n"+
			"-# "+opsEmote+" **ETIHAD OPERATIONS**",
		d.Departure, d.Number, d.Arrival,
	)
}
