package models

// TransactionType is the kind of deal a listing is offered under.
type TransactionType string

const (
	TransactionSale     TransactionType = "Venda"
	TransactionRent     TransactionType = "Aluguel"
	TransactionSeasonal TransactionType = "Temporada"
)

// PropertyType is one of the listing categories the agency works with.
type PropertyType string

const (
	TypeHighEnd        PropertyType = "Alto Padrão"
	TypeApartment      PropertyType = "Apartamento"
	TypeHouse          PropertyType = "Casa"
	TypeCountryHouse   PropertyType = "Chácara"
	TypeDuplex         PropertyType = "Duplex"
	TypeOffice         PropertyType = "Escritório"
	TypeFarm           PropertyType = "Fazenda"
	TypeWarehouse      PropertyType = "Galpão"
	TypeStudio         PropertyType = "Kitnet"
	TypeNewDevelopment PropertyType = "Lançamento"
	TypeLot            PropertyType = "Lote"
	TypeCommercialRoom PropertyType = "Sala Comercial"
	TypeShop           PropertyType = "Shop"
	TypeRanch          PropertyType = "Sítio"
	TypeTownhouse      PropertyType = "Sobrado"
	TypeTriplex        PropertyType = "Triplex"
	TypeVilla          PropertyType = "Vila"
)

// PropertyTypes lists every supported listing category.
var PropertyTypes = []PropertyType{
	TypeHighEnd, TypeApartment, TypeHouse, TypeCountryHouse, TypeDuplex,
	TypeOffice, TypeFarm, TypeWarehouse, TypeStudio, TypeNewDevelopment,
	TypeLot, TypeCommercialRoom, TypeShop, TypeRanch, TypeTownhouse,
	TypeTriplex, TypeVilla,
}

// Property is a listing in the catalog. The ID is unique and immutable
// once assigned.
type Property struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            PropertyType    `json:"type"`
	Location        string          `json:"location"`
	Price           float64         `json:"price"`
	TransactionType TransactionType `json:"transactionType"`
	Description     string          `json:"description"`
	Features        []string        `json:"features"`
	Images          []string        `json:"images,omitempty"`
	IsVIP           bool            `json:"isVip,omitempty"`
}
