package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"ultrabot/server/internal/models"

	"github.com/sirupsen/logrus"
)

// Fixed keys the four collections live under. Every read loads the whole
// array; every write rewrites it. Last write wins.
const (
	usersKey      = "ultra-imobiliaria-users"
	leadsKey      = "ultra-imobiliaria-leads"
	propertiesKey = "ultra-imobiliaria-properties"
	locationsKey  = "ultra-imobiliaria-locations"
)

// Store provides collection-level access to users, leads, properties and
// locations on top of a KV substrate, plus the session-scoped current-user
// slot. Reads fail soft: malformed stored JSON is logged and treated as an
// empty collection.
type Store struct {
	kv       KV
	sessions *SessionStore
	logger   *logrus.Logger
}

func NewStore(kv KV, logger *logrus.Logger) *Store {
	return &Store{
		kv:       kv,
		sessions: NewSessionStore(),
		logger:   logger,
	}
}

// Sessions exposes the session-lifetime current-user store.
func (s *Store) Sessions() *SessionStore {
	return s.sessions
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// NewMessageID mints a chat message identifier outside the store's own
// collections, sharing the timestamp scheme the record IDs use.
func NewMessageID(prefix string) string {
	return newID(prefix)
}

func readCollection[T any](s *Store, key string) []T {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to read collection")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to parse stored collection, treating as empty")
		return nil
	}
	return items
}

func writeCollection[T any](s *Store, key string, items []T) {
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to serialize collection")
		return
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		s.logger.WithError(err).WithField("key", key).Error("Failed to write collection")
	}
}

// --- Users ---

func (s *Store) GetUsers() []models.User {
	return readCollection[models.User](s, usersKey)
}

// AddUser registers a new user with an empty chat history and favorites
// list and prepends it to the collection.
func (s *Store) AddUser(name, email, passwordHash string) models.User {
	users := s.GetUsers()
	user := models.User{
		ID:                  newID("user"),
		Name:                name,
		Email:               email,
		PasswordHash:        passwordHash,
		ChatHistory:         []models.Message{},
		FavoritedProperties: []string{},
		SearchPreferences:   &models.SearchPreferences{},
	}
	writeCollection(s, usersKey, append([]models.User{user}, users...))
	return user
}

func (s *Store) GetUserByEmail(email string) (models.User, bool) {
	for _, user := range s.GetUsers() {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return models.User{}, false
}

// UpdateUser applies mutate to the user with the given id and reports
// whether the user existed. When the updated user is logged in, every
// session snapshot holding that user is rewritten so the two views stay
// consistent.
func (s *Store) UpdateUser(id string, mutate func(*models.User)) bool {
	users := s.GetUsers()
	for i := range users {
		if users[i].ID != id {
			continue
		}
		mutate(&users[i])
		users[i].ID = id
		writeCollection(s, usersKey, users)
		s.sessions.refresh(users[i])
		return true
	}
	return false
}

// --- Leads ---

// GetLeads returns all leads sorted descending by creation timestamp.
func (s *Store) GetLeads() []models.Lead {
	leads := readCollection[models.Lead](s, leadsKey)
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Timestamp.After(leads[j].Timestamp)
	})
	return leads
}

// AddLead creates a lead from contact-form details. Status starts at new
// with an empty notes list.
func (s *Store) AddLead(details models.Lead) models.Lead {
	leads := s.GetLeads()
	details.ID = newID("lead")
	details.Timestamp = time.Now().UTC()
	details.Status = models.LeadStatusNew
	details.Notes = []models.Note{}
	if details.FavoritedProperties == nil {
		details.FavoritedProperties = []string{}
	}

	updated := []models.Lead{details}
	for _, l := range leads {
		if l.ID != details.ID {
			updated = append(updated, l)
		}
	}
	writeCollection(s, leadsKey, updated)
	return details
}

func (s *Store) UpdateLead(id string, mutate func(*models.Lead)) bool {
	leads := s.GetLeads()
	for i := range leads {
		if leads[i].ID != id {
			continue
		}
		mutate(&leads[i])
		leads[i].ID = id
		writeCollection(s, leadsKey, leads)
		return true
	}
	return false
}

// AddLeadNote appends an annotation to a lead and returns it, reporting
// whether the lead existed.
func (s *Store) AddLeadNote(leadID, text string) (models.Note, bool) {
	var note models.Note
	ok := s.UpdateLead(leadID, func(lead *models.Lead) {
		note = models.Note{
			ID:        newID("note"),
			Text:      text,
			Timestamp: time.Now().UTC(),
		}
		lead.Notes = append(lead.Notes, note)
	})
	return note, ok
}

func (s *Store) DeleteLead(id string) {
	leads := s.GetLeads()
	updated := make([]models.Lead, 0, len(leads))
	for _, l := range leads {
		if l.ID != id {
			updated = append(updated, l)
		}
	}
	writeCollection(s, leadsKey, updated)
}

// --- Properties ---

func (s *Store) GetProperties() []models.Property {
	return readCollection[models.Property](s, propertiesKey)
}

// GetPropertiesByIDs resolves ids against the catalog, preserving input
// order. Unknown ids are silently dropped.
func (s *Store) GetPropertiesByIDs(ids []string) []models.Property {
	all := s.GetProperties()
	byID := make(map[string]models.Property, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	var resolved []models.Property
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			resolved = append(resolved, p)
		}
	}
	return resolved
}

func (s *Store) AddProperty(property models.Property) models.Property {
	properties := s.GetProperties()
	property.ID = newID("PROP")
	writeCollection(s, propertiesKey, append([]models.Property{property}, properties...))
	return property
}

// UpdateProperty replaces the listing with the given id, keeping the id
// itself immutable. It reports whether the listing existed.
func (s *Store) UpdateProperty(id string, property models.Property) bool {
	properties := s.GetProperties()
	for i := range properties {
		if properties[i].ID != id {
			continue
		}
		property.ID = id
		properties[i] = property
		writeCollection(s, propertiesKey, properties)
		return true
	}
	return false
}

func (s *Store) DeleteProperty(id string) {
	properties := s.GetProperties()
	updated := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if p.ID != id {
			updated = append(updated, p)
		}
	}
	writeCollection(s, propertiesKey, updated)
}

// --- Locations ---

func (s *Store) GetLocations() []string {
	return readCollection[string](s, locationsKey)
}

// AddLocation prepends a location unless it is empty or already present.
func (s *Store) AddLocation(location string) {
	if location == "" {
		return
	}
	locations := s.GetLocations()
	for _, l := range locations {
		if l == location {
			return
		}
	}
	writeCollection(s, locationsKey, append([]string{location}, locations...))
}

// DeleteLocation removes a location unconditionally. The zero-references
// guard is the caller's responsibility.
func (s *Store) DeleteLocation(location string) {
	locations := s.GetLocations()
	updated := make([]string, 0, len(locations))
	for _, l := range locations {
		if l != location {
			updated = append(updated, l)
		}
	}
	writeCollection(s, locationsKey, updated)
}

// PropertiesReferencing counts catalog entries tied to a location. Callers
// use it to guard DeleteLocation.
func (s *Store) PropertiesReferencing(location string) int {
	count := 0
	for _, p := range s.GetProperties() {
		if p.Location == location {
			count++
		}
	}
	return count
}
