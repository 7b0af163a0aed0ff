package geo

import (
	"fmt"

	"ultrabot/server/config"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// NearestMarket returns the supported market closest to the given
// coordinates. ok is false when no markets are configured.
func NearestMarket(lat, lng float64) (config.Market, bool) {
	point := orb.Point{lng, lat}

	var nearest config.Market
	best := -1.0
	for _, market := range config.SupportedMarkets {
		d := geo.Distance(point, market.Center())
		if best < 0 || d < best {
			best = d
			nearest = market
		}
	}
	return nearest, best >= 0
}

// GrantedTurn synthesizes the user turn sent when geolocation permission
// is granted. It re-enters the normal send pipeline like any other text.
func GrantedTurn(lat, lng float64) string {
	turn := fmt.Sprintf(
		"O usuário permitiu a localização. As coordenadas são latitude %v e longitude %v. Encontre imóveis relevantes nas proximidades, focando na cidade mais próxima que você conhece.",
		lat, lng,
	)
	if market, ok := NearestMarket(lat, lng); ok {
		turn += fmt.Sprintf(" A cidade conhecida mais próxima é %s.", market.Name)
	}
	return turn
}

// DeniedTurn is the synthesized fallback for a refused permission request.
const DeniedTurn = "O usuário não permitiu o acesso à localização."

// UnsupportedTurn is the synthesized fallback when the client has no
// geolocation capability at all.
const UnsupportedTurn = "Geolocalização não é suportada por este navegador."
