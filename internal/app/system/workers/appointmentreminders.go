// internal/app/system/workers/appointmentreminders.go
package workers

import (
	"context"
	"sync"
	"time"

	appointmentstore "github.com/mizanlegal/mizan/internal/app/store/appointments"
	notificationstore "github.com/mizanlegal/mizan/internal/app/store/notifications"
	"github.com/mizanlegal/mizan/internal/domain/models"
	"go.uber.org/zap"
)

// AppointmentReminders is a background worker that pushes a reminder
// notification to each client the day before their consultation.
type AppointmentReminders struct {
	appts    *appointmentstore.Store
	notif    *notificationstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewAppointmentReminders creates a reminder worker. interval is how
// often the scan runs; once an hour is plenty since reminders cover a
// whole day.
func NewAppointmentReminders(appts *appointmentstore.Store, notif *notificationstore.Store, logger *zap.Logger, interval time.Duration) *AppointmentReminders {
	return &AppointmentReminders{
		appts:    appts,
		notif:    notif,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background reminder loop.
func (w *AppointmentReminders) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("appointment reminder worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AppointmentReminders) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("appointment reminder worker stopped")
}

func (w *AppointmentReminders) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// First scan right away so a restart doesn't skip a cycle.
	w.remind()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.remind()
		}
	}
}

func (w *AppointmentReminders) remind() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	appts, err := w.appts.ListNeedingReminder(ctx, tomorrow)
	if err != nil {
		w.log.Error("failed to list appointments needing reminders", zap.Error(err))
		return
	}

	sent := 0
	for _, a := range appts {
		_, err := w.notif.Create(ctx, models.Notification{
			UserID: a.ClientID,
			Type:   models.NotifReminder,
			Title:  "تذكير بموعدك",
			Body:   "لديك موعد استشارة غداً " + a.Date + " الساعة " + a.Slot + ".",
		})
		if err != nil {
			w.log.Error("failed to create reminder notification",
				zap.String("appointment_id", a.ID.Hex()),
				zap.Error(err))
			continue
		}
		if err := w.appts.MarkReminded(ctx, a.ID); err != nil {
			w.log.Error("failed to mark appointment reminded",
				zap.String("appointment_id", a.ID.Hex()),
				zap.Error(err))
		}
		sent++
	}

	if sent > 0 {
		w.log.Info("sent appointment reminders",
			zap.String("date", tomorrow),
			zap.Int("count", sent))
	}
}
