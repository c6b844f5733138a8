// internal/domain/models/appointment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is a booked consultation. Date is the calendar day
// ("2006-01-02") and Slot the half-hour start time ("09:30"); slots
// come from a fixed grid and a scheduled booking holds its slot until
// cancelled.
type Appointment struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientID           primitive.ObjectID  `bson:"client_id" json:"client_id"`
	LawyerID           *primitive.ObjectID `bson:"lawyer_id,omitempty" json:"lawyer_id,omitempty"`
	ConsultationTypeID primitive.ObjectID  `bson:"consultation_type_id" json:"consultation_type_id"`
	Date               string              `bson:"date" json:"date"`
	Slot               string              `bson:"slot" json:"slot"`
	Status             string              `bson:"status" json:"status"`
	Notes              string              `bson:"notes,omitempty" json:"notes,omitempty"`
	ReminderSent       bool                `bson:"reminder_sent,omitempty" json:"reminder_sent,omitempty"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}
