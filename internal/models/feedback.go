package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CategoryProduct = "product"
	CategoryService = "service"
)

const (
	SubmitterRegistered = "registered"
	SubmitterGuest      = "guest"
)

// Feedback is a single submission. SubmitterID is either a registered
// user's external id or a generated GST-prefixed guest id; SubmitterKind
// records which. Records are written once and never mutated.
type Feedback struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"internalId"`
	SubmitterID   string        `bson:"submitterId" json:"submitterId"`
	SubmitterKind string        `bson:"submitterKind" json:"submitterKind"`
	Category      string        `bson:"category" json:"category"`
	ItemName      string        `bson:"itemName" json:"itemName"`
	Message       string        `bson:"message" json:"message"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}

// SubmitterInfo is display data about a submitter, derived at read time.
type SubmitterInfo struct {
	Name      string `json:"name"`
	DisplayID string `json:"displayId"`
	Kind      string `json:"kind"`
	Email     string `json:"email"`
}

// EnrichedFeedback is a Feedback joined with its submitter's display info.
// It is a view computed by the aggregator and is never persisted.
type EnrichedFeedback struct {
	Feedback
	SubmitterInfo SubmitterInfo `json:"submitterInfo"`
}
