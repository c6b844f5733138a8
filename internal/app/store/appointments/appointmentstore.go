// internal/app/store/appointments/appointmentstore.go
package appointmentstore

import (
	"context"
	"errors"
	"time"

	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/app/system/booking"
	"github.com/mizanlegal/mizan/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrSlotTaken is returned when the requested date and slot already
	// carry a scheduled appointment.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrBadDate is returned when the date is not a bookable working day.
	ErrBadDate = errors.New("date not available for booking")

	// ErrBadSlot is returned when the slot is not on the half-hour grid.
	ErrBadSlot = errors.New("invalid time slot")

	// ErrNotCancellable is returned when the appointment is not in a
	// state the client can cancel.
	ErrNotCancellable = errors.New("appointment cannot be cancelled")
)

// Store provides access to the appointments collection. Booking and
// cancellation push a notification to the client's feed when a
// notification store is attached.
type Store struct {
	c     *mongo.Collection
	notif *notificationstore.Store
}

// New creates an appointment store. notif may be nil in tests that
// don't care about feed entries.
func New(db *mongo.Database, notif *notificationstore.Store) *Store {
	return &Store{c: db.Collection("appointments"), notif: notif}
}

// GetByID loads an appointment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Book validates the requested date and slot against the availability
// rules, rejects double bookings, and inserts the appointment.
func (s *Store) Book(ctx context.Context, clientID, typeID primitive.ObjectID, date, slot, notes string) (models.Appointment, error) {
	if !booking.ValidDate(time.Now(), date) {
		return models.Appointment{}, ErrBadDate
	}
	if !booking.ValidSlot(slot) {
		return models.Appointment{}, ErrBadSlot
	}

	now := time.Now().UTC()
	appt := models.Appointment{
		ID:                 primitive.NewObjectID(),
		ClientID:           clientID,
		ConsultationTypeID: typeID,
		Date:               date,
		Slot:               slot,
		Status:             models.AppointmentScheduled,
		Notes:              notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// The partial unique index on scheduled (date, slot) is the
	// arbiter; two racing bookings both reach the insert and exactly
	// one wins.
	if _, err := s.c.InsertOne(ctx, appt); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Appointment{}, ErrSlotTaken
		}
		return models.Appointment{}, err
	}

	s.notify(ctx, clientID, models.NotifAppointment,
		"تم حجز موعد الاستشارة",
		"موعدك يوم "+date+" الساعة "+slot)
	return appt, nil
}

// Cancel sets a scheduled appointment to cancelled. Only the owning
// client (or staff passing the stored client ID) can cancel, and only
// while it is still scheduled.
func (s *Store) Cancel(ctx context.Context, id, clientID primitive.ObjectID) error {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "client_id": clientID, "status": models.AppointmentScheduled},
		bson.M{"$set": bson.M{"status": models.AppointmentCancelled, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var appt models.Appointment
	if err := res.Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotCancellable
		}
		return err
	}

	s.notify(ctx, appt.ClientID, models.NotifAppointment,
		"تم إلغاء موعد الاستشارة",
		"تم إلغاء موعدك يوم "+appt.Date+" الساعة "+appt.Slot)
	return nil
}

// Complete marks an appointment completed. Staff only; no client check.
func (s *Store) Complete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AppointmentScheduled},
		bson.M{"$set": bson.M{"status": models.AppointmentCompleted, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AssignLawyer sets the lawyer handling an appointment and tells the
// client.
func (s *Store) AssignLawyer(ctx context.Context, id, lawyerID primitive.ObjectID) error {
	res := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lawyer_id": lawyerID, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var appt models.Appointment
	if err := res.Decode(&appt); err != nil {
		return err
	}

	s.notify(ctx, appt.ClientID, models.NotifAppointment,
		"تم تعيين محامٍ لموعدك",
		"موعدك يوم "+appt.Date+" الساعة "+appt.Slot)
	return nil
}

// ListForClient returns a client's appointments, most recent date
// first.
func (s *Store) ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Appointment, error) {
	return s.list(ctx, bson.M{"client_id": clientID})
}

// ListForLawyer returns the appointments assigned to a lawyer.
func (s *Store) ListForLawyer(ctx context.Context, lawyerID primitive.ObjectID) ([]models.Appointment, error) {
	return s.list(ctx, bson.M{"lawyer_id": lawyerID})
}

// ListScheduled returns every scheduled appointment, for staff review.
func (s *Store) ListScheduled(ctx context.Context) ([]models.Appointment, error) {
	return s.list(ctx, bson.M{"status": models.AppointmentScheduled})
}

// ListNeedingReminder returns the scheduled appointments on a date
// whose clients have not yet received a reminder notification.
func (s *Store) ListNeedingReminder(ctx context.Context, date string) ([]models.Appointment, error) {
	return s.list(ctx, bson.M{
		"date":          date,
		"status":        models.AppointmentScheduled,
		"reminder_sent": bson.M{"$ne": true},
	})
}

// MarkReminded records that the reminder for an appointment went out,
// so the worker never notifies twice.
func (s *Store) MarkReminded(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reminder_sent": true, "updated_at": time.Now().UTC()}})
	return err
}

// BookedSlots returns the slots already scheduled on a date, so the
// wizard can grey them out.
func (s *Store) BookedSlots(ctx context.Context, date string) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{"date": date, "status": models.AppointmentScheduled})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var appts []models.Appointment
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(appts))
	for _, a := range appts {
		booked[a.Slot] = true
	}
	return booked, nil
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "slot", Value: -1},
	})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var appts []models.Appointment
	if err := cur.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *Store) notify(ctx context.Context, userID primitive.ObjectID, typ, title, body string) {
	if s.notif == nil {
		return
	}
	// Feed entries are best effort; the booking itself already landed.
	_, _ = s.notif.Create(ctx, models.Notification{
		UserID: userID,
		Type:   typ,
		Title:  title,
		Body:   body,
	})
}

// EnsureIndexes creates the booking conflict and listing indexes.
// The (date, slot) index is unique over scheduled appointments only,
// so cancelling frees the slot for rebooking.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "slot", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.AppointmentScheduled}),
		},
		{
			Keys: bson.D{
				{Key: "client_id", Value: 1},
				{Key: "date", Value: -1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
