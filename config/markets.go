package config

import "github.com/paulmach/orb"

// Market is a city the agency operates in. Names match the location
// strings used by the listing catalog.
type Market struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Center returns the market's coordinates as an orb point (lng, lat).
func (m Market) Center() orb.Point {
	return orb.Point{m.Longitude, m.Latitude}
}

// SupportedMarkets lists the cities the agency covers.
var SupportedMarkets = []Market{
	{Name: "Goiânia, GO", Latitude: -16.6869, Longitude: -49.2648},
	{Name: "Aparecida de Goiânia, GO", Latitude: -16.8198, Longitude: -49.2469},
	{Name: "Trindade, GO", Latitude: -16.6517, Longitude: -49.4927},
	{Name: "Rio Verde, GO", Latitude: -17.7923, Longitude: -50.9192},
	{Name: "Senador Canedo, GO", Latitude: -16.7084, Longitude: -49.0914},
	{Name: "Guapó, GO", Latitude: -16.8295, Longitude: -49.5319},
	{Name: "Anápolis, GO", Latitude: -16.3281, Longitude: -48.9530},
	{Name: "Caldas Novas, GO", Latitude: -17.7442, Longitude: -48.6250},
}

// GetMarketNames returns the supported market names in order.
func GetMarketNames() []string {
	names := make([]string, len(SupportedMarkets))
	for i, market := range SupportedMarkets {
		names[i] = market.Name
	}
	return names
}

// GetMarketByName returns a market by its exact name.
func GetMarketByName(name string) *Market {
	for _, market := range SupportedMarkets {
		if market.Name == name {
			return &market
		}
	}
	return nil
}
