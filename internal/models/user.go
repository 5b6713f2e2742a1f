package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles a user can hold. Guests never get a stored User record; the role
// exists so tokens and identities share one vocabulary.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User is a registered account. ExternalUserID is the stable business key
// (USR-prefixed) handed out at registration; InternalID is backend-assigned.
// The bson/json field names are the snapshot contract and must not change.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"internalId"`
	ExternalUserID string        `bson:"externalUserId" json:"externalUserId"`
	Name           string        `bson:"name" json:"name"`
	Email          string        `bson:"email" json:"email"`
	PasswordHash   string        `bson:"passwordHash" json:"passwordHash"`
	Role           string        `bson:"role" json:"role"`
}
