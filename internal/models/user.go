package models

// SearchPreferences are the saved defaults a client can set on their profile.
type SearchPreferences struct {
	PropertyType    PropertyType    `json:"propertyType,omitempty"`
	TransactionType TransactionType `json:"transactionType,omitempty"`
	Locations       []string        `json:"locations,omitempty"`
}

// User is a registered client. PasswordHash is a bcrypt hash; the chat
// history and favorites are overwritten wholesale as the session progresses.
type User struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Email               string             `json:"email"`
	PasswordHash        string             `json:"passwordHash,omitempty"`
	ChatHistory         []Message          `json:"chatHistory"`
	FavoritedProperties []string           `json:"favoritedProperties"`
	Phone               string             `json:"phone,omitempty"`
	SearchPreferences   *SearchPreferences `json:"searchPreferences,omitempty"`
	IsVIP               bool               `json:"isVip,omitempty"`
}

// Sanitized returns a copy safe to hand back to API clients.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
