package storage

import (
	"ultrabot/server/internal/auth"
	"ultrabot/server/internal/models"
)

var initialLocations = []string{
	"Goiânia, GO",
	"Aparecida de Goiânia, GO",
	"Trindade, GO",
	"Rio Verde, GO",
	"Senador Canedo, GO",
	"Guapó, GO",
	"Anápolis, GO",
	"Caldas Novas, GO",
}

var initialProperties = []models.Property{
	{
		ID: "APTO-GYN-MARISTA-01", Name: "Apartamento de Luxo no Setor Marista",
		Type: models.TypeHighEnd, Location: "Goiânia, GO", Price: 1800000,
		TransactionType: models.TransactionSale,
		Description:     "3 suítes plenas, varanda gourmet com churrasqueira, lazer completo no condomínio.",
		Features:        []string{"Piscina", "Segurança 24h", "Garagem", "Varanda Gourmet"},
		Images: []string{
			"https://picsum.photos/seed/APTO-GYN-MARISTA-01/800/600",
			"https://picsum.photos/seed/APTO-GYN-MARISTA-01-2/800/600",
			"https://picsum.photos/seed/APTO-GYN-MARISTA-01-3/800/600",
		},
		IsVIP: true,
	},
	{
		ID: "CASA-GYN-ALPHA-02", Name: "Casa Térrea no Alphaville Goiás",
		Type: models.TypeHighEnd, Location: "Goiânia, GO", Price: 4500000,
		TransactionType: models.TransactionSale,
		Description:     "4 suítes, piscina aquecida, projeto de iluminação e paisagismo impecável.",
		Features:        []string{"Piscina", "Segurança 24h", "Jacuzzi"},
		Images: []string{
			"https://picsum.photos/seed/CASA-GYN-ALPHA-02/800/600",
			"https://picsum.photos/seed/CASA-GYN-ALPHA-02-2/800/600",
		},
		IsVIP: true,
	},
	{
		ID: "SALA-GYN-BUENO-03", Name: "Sala Comercial no Orion Business",
		Type: models.TypeCommercialRoom, Location: "Goiânia, GO", Price: 6500,
		TransactionType: models.TransactionRent,
		Description:     "Sala com 45m², vista panorâmica, no complexo de saúde e negócios mais moderno da cidade.",
		Features:        []string{"Garagem", "Segurança 24h"},
		Images:          []string{"https://picsum.photos/seed/SALA-GYN-BUENO-03/800/600"},
	},
	{
		ID: "APTO-APG-CENTRO-04", Name: "Apartamento 2 Quartos no Garavelo",
		Type: models.TypeApartment, Location: "Aparecida de Goiânia, GO", Price: 250000,
		TransactionType: models.TransactionSale,
		Description:     "Ótima localização, próximo a comércios e terminal de ônibus. Condomínio com área de lazer.",
		Features:        []string{"Garagem", "Playground"},
		Images: []string{
			"https://picsum.photos/seed/APTO-APG-CENTRO-04/800/600",
			"https://picsum.photos/seed/APTO-APG-CENTRO-04-2/800/600",
		},
	},
	{
		ID: "CASA-TRINDADE-SANTUARIO-05", Name: "Casa 3 Quartos em Trindade",
		Type: models.TypeHouse, Location: "Trindade, GO", Price: 350000,
		TransactionType: models.TransactionSale,
		Description:     "Casa espaçosa, próxima ao Santuário do Divino Pai Eterno, com quintal amplo.",
		Features:        []string{"Quintal"},
		Images:          []string{"https://picsum.photos/seed/CASA-TRINDADE-SANTUARIO-05/800/600"},
	},
	{
		ID: "LOTE-SC-CONDOMINIO-06", Name: "Lote no Condomínio Viena",
		Type: models.TypeLot, Location: "Senador Canedo, GO", Price: 180000,
		TransactionType: models.TransactionSale,
		Description:     "Lote de 360m² em condomínio fechado com infraestrutura completa e segurança.",
		Features:        []string{"Segurança 24h"},
		Images:          []string{"https://picsum.photos/seed/LOTE-SC-CONDOMINIO-06/800/600"},
	},
	{
		ID: "CHACARA-GUAPO-LAZER-07", Name: "Chácara de Lazer em Guapó",
		Type: models.TypeCountryHouse, Location: "Guapó, GO", Price: 600000,
		TransactionType: models.TransactionSale,
		Description:     "Chácara com casa principal, piscina, pomar e acesso a córrego. Ideal para fins de semana.",
		Features:        []string{"Piscina", "Área Verde"},
		Images: []string{
			"https://picsum.photos/seed/CHACARA-GUAPO-LAZER-07/800/600",
			"https://picsum.photos/seed/CHACARA-GUAPO-LAZER-07-2/800/600",
		},
	},
	{
		ID: "FAZENDA-RIO-VERDE-08", Name: "Fazenda de 50 Alqueires",
		Type: models.TypeFarm, Location: "Rio Verde, GO", Price: 10000000,
		TransactionType: models.TransactionSale,
		Description:     "Terra de cultura, dupla aptidão, com casa sede e curral. Próxima à rodovia.",
		Features:        []string{"Casa Sede", "Curral"},
		Images:          []string{"https://picsum.photos/seed/FAZENDA-RIO-VERDE-08/800/600"},
	},
	{
		ID: "APTO-CALDAS-TURISMO-09", Name: "Apartamento de 1 Quarto no DiRoma",
		Type: models.TypeApartment, Location: "Caldas Novas, GO", Price: 1500,
		TransactionType: models.TransactionSeasonal,
		Description:     "Totalmente mobiliado, com acesso ao parque aquático do condomínio. Perfeito para férias.",
		Features:        []string{"Piscina", "Mobiliado", "Parque Aquático"},
		Images:          []string{"https://picsum.photos/seed/APTO-CALDAS-TURISMO-09/800/600"},
	},
	{
		ID: "SOBRADO-RIO-VERDE-CENTRO-10", Name: "Sobrado Comercial/Residencial",
		Type: models.TypeTownhouse, Location: "Rio Verde, GO", Price: 950000,
		TransactionType: models.TransactionSale,
		Description:     "Excelente ponto no centro da cidade, com 4 quartos na parte superior e salão comercial no térreo.",
		Features:        []string{"Localização Central"},
		Images:          []string{"https://picsum.photos/seed/SOBRADO-RIO-VERDE-CENTRO-10/800/600"},
	},
}

// Seed writes the starter catalog, locations and demo user, but only for
// keys that are still absent. Existing data is never overwritten.
func (s *Store) Seed() {
	if _, ok, _ := s.kv.Get(propertiesKey); !ok {
		writeCollection(s, propertiesKey, initialProperties)
		s.logger.WithField("count", len(initialProperties)).Info("Seeded property catalog")
	}
	if _, ok, _ := s.kv.Get(locationsKey); !ok {
		writeCollection(s, locationsKey, initialLocations)
	}
	if _, ok, _ := s.kv.Get(usersKey); !ok {
		hash, err := auth.HashPassword("123")
		if err != nil {
			s.logger.WithError(err).Error("Failed to hash demo user password")
			return
		}
		writeCollection(s, usersKey, []models.User{{
			ID:                  "user-demo-01",
			Name:                "Cliente Teste",
			Email:               "cliente@teste.com",
			PasswordHash:        hash,
			ChatHistory:         []models.Message{},
			FavoritedProperties: []string{},
			Phone:               "62999998888",
			SearchPreferences: &models.SearchPreferences{
				PropertyType:    models.TypeApartment,
				TransactionType: models.TransactionSale,
				Locations:       []string{"Goiânia, GO"},
			},
		}})
		s.logger.Info("Seeded demo user")
	}
}
