// internal/domain/models/legalcase.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case statuses.
const (
	CaseOpen     = "open"
	CaseInReview = "in_review"
	CaseActive   = "active"
	CaseClosed   = "closed"
)

// LegalCase is a client's case file. A case may be assigned to a
// lawyer and linked to the service it falls under.
type LegalCase struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID  `bson:"client_id" json:"client_id"`
	LawyerID  *primitive.ObjectID `bson:"lawyer_id,omitempty" json:"lawyer_id,omitempty"`
	ServiceID *primitive.ObjectID `bson:"service_id,omitempty" json:"service_id,omitempty"`

	CaseNumber string `bson:"case_number" json:"case_number"`
	Title      string `bson:"title" json:"title"`
	TitleCI    string `bson:"title_ci" json:"title_ci"`
	Summary    string `bson:"summary,omitempty" json:"summary,omitempty"`
	Status     string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CaseDocument is a file uploaded against a case. The bytes live in
// the storage provider under StorageKey; Mongo holds only metadata.
type CaseDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CaseID     primitive.ObjectID `bson:"case_id" json:"case_id"`
	UploaderID primitive.ObjectID `bson:"uploader_id" json:"uploader_id"`

	FileName    string `bson:"file_name" json:"file_name"`
	StorageKey  string `bson:"storage_key" json:"storage_key"`
	ContentType string `bson:"content_type,omitempty" json:"content_type,omitempty"`
	Size        int64  `bson:"size" json:"size"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
