package models

// Profile represents a user profile row keyed by the auth identity.
// The primary key matches the auth subject; OwnerID is a secondary
// column kept for deployments that provisioned profiles out of band.
type Profile struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}
