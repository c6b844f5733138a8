// Package booking generates the dates and time slots offered when a
// client schedules a consultation. Availability is computed, not
// stored: the office works Sunday through Thursday, and appointments
// are offered in half-hour slots during office hours.
package booking

import "time"

const (
	// DateFormat is the wire format for appointment dates.
	DateFormat = "2006-01-02"
	// SlotFormat is the wire format for time slots.
	SlotFormat = "15:04"

	// maxDays caps how many bookable days are offered.
	maxDays = 14
	// scanWindow bounds the scan so a long holiday block can't loop
	// forever.
	scanWindow = 30

	firstSlotHour = 9
	lastSlotHour  = 16
)

// IsWorkingDay reports whether d falls on a working day. The office
// weekend is Friday and Saturday.
func IsWorkingDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Friday && wd != time.Saturday
}

// AvailableDates returns the next bookable dates strictly after now,
// formatted as YYYY-MM-DD in ascending order. Weekends are skipped and
// at most 14 dates are returned, drawn from the 30 days following now.
func AvailableDates(now time.Time) []string {
	dates := make([]string, 0, maxDays)
	day := now
	for i := 0; i < scanWindow && len(dates) < maxDays; i++ {
		day = day.AddDate(0, 0, 1)
		if IsWorkingDay(day) {
			dates = append(dates, day.Format(DateFormat))
		}
	}
	return dates
}

// TimeSlots returns the half-hour consultation slots for a working
// day, from 09:00 through 16:30 inclusive, formatted as HH:MM.
func TimeSlots() []string {
	slots := make([]string, 0, (lastSlotHour-firstSlotHour+1)*2)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots,
			time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format(SlotFormat),
			time.Date(0, 1, 1, h, 30, 0, 0, time.UTC).Format(SlotFormat),
		)
	}
	return slots
}

// ValidSlot reports whether slot is one of the offered time slots.
func ValidSlot(slot string) bool {
	for _, s := range TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// ValidDate reports whether date is one of the currently offered
// booking dates.
func ValidDate(now time.Time, date string) bool {
	for _, d := range AvailableDates(now) {
		if d == date {
			return true
		}
	}
	return false
}
