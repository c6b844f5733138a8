// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is one of the organization's legal-aid services or
// initiatives shown on the public site. Description is admin-entered
// HTML, sanitized on save.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"title_ci"`
	TitleAr     string             `bson:"title_ar,omitempty" json:"title_ar,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"` // service | initiative
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	SortOrder   int                `bson:"sort_order" json:"sort_order"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"` // active | disabled

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ConsultationType is a bookable consultation kind offered in the
// appointment wizard.
type ConsultationType struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	NameAr          string             `bson:"name_ar,omitempty" json:"name_ar,omitempty"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int                `bson:"duration_minutes" json:"duration_minutes"`
	FeeWaived       bool               `bson:"fee_waived" json:"fee_waived"`
	SortOrder       int                `bson:"sort_order" json:"sort_order"`
	Status          string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
