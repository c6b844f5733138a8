package booking

import (
	"testing"
	"time"
)

// A fixed reference point keeps the tests deterministic.
// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func TestAvailableDates_SkipsWeekends(t *testing.T) {
	for _, ds := range AvailableDates(monday) {
		d, err := time.Parse(DateFormat, ds)
		if err != nil {
			t.Fatalf("unparseable date %q: %v", ds, err)
		}
		if wd := d.Weekday(); wd == time.Friday || wd == time.Saturday {
			t.Errorf("weekend date %s (%s) offered for booking", ds, wd)
		}
	}
}

func TestAvailableDates_StartsAfterToday(t *testing.T) {
	dates := AvailableDates(monday)
	if len(dates) == 0 {
		t.Fatal("expected at least one available date")
	}

	today := monday.Format(DateFormat)
	if dates[0] <= today {
		t.Errorf("first date %s is not strictly after today %s", dates[0], today)
	}
	// Monday's next working day is Tuesday.
	if want := "2026-03-03"; dates[0] != want {
		t.Errorf("first date = %s, want %s", dates[0], want)
	}
}

func TestAvailableDates_Ascending(t *testing.T) {
	dates := AvailableDates(monday)
	for i := 1; i < len(dates); i++ {
		if dates[i] <= dates[i-1] {
			t.Errorf("dates not strictly ascending: %s then %s", dates[i-1], dates[i])
		}
	}
}

func TestAvailableDates_AtMostFourteen(t *testing.T) {
	if got := len(AvailableDates(monday)); got > 14 {
		t.Errorf("got %d dates, want at most 14", got)
	}
}

func TestAvailableDates_FullTwoWeeks(t *testing.T) {
	// A 30-day scan always finds 14 working days with a 2-day weekend.
	if got := len(AvailableDates(monday)); got != 14 {
		t.Errorf("got %d dates, want 14", got)
	}
}

func TestAvailableDates_ThursdayStartSkipsToSunday(t *testing.T) {
	// 2026-03-05 is a Thursday; the next working day is Sunday 03-08.
	thursday := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	dates := AvailableDates(thursday)
	if len(dates) == 0 {
		t.Fatal("expected dates")
	}
	if want := "2026-03-08"; dates[0] != want {
		t.Errorf("first date after Thursday = %s, want %s", dates[0], want)
	}
}

func TestTimeSlots_RangeAndStep(t *testing.T) {
	slots := TimeSlots()
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %s, want 09:00", slots[0])
	}
	if last := slots[len(slots)-1]; last != "16:30" {
		t.Errorf("last slot = %s, want 16:30", last)
	}
	if len(slots) != 16 {
		t.Errorf("got %d slots, want 16", len(slots))
	}

	for i := 1; i < len(slots); i++ {
		prev, _ := time.Parse(SlotFormat, slots[i-1])
		cur, _ := time.Parse(SlotFormat, slots[i])
		if cur.Sub(prev) != 30*time.Minute {
			t.Errorf("gap between %s and %s is not 30 minutes", slots[i-1], slots[i])
		}
	}
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		slot string
		want bool
	}{
		{"09:00", true},
		{"16:30", true},
		{"12:30", true},
		{"08:30", false},
		{"17:00", false},
		{"09:15", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidSlot(tt.slot); got != tt.want {
			t.Errorf("ValidSlot(%q) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestValidDate(t *testing.T) {
	dates := AvailableDates(monday)
	if !ValidDate(monday, dates[0]) {
		t.Errorf("expected offered date %s to validate", dates[0])
	}
	if ValidDate(monday, monday.Format(DateFormat)) {
		t.Error("expected today to be rejected")
	}
	// 2026-03-06 is a Friday within the window.
	if ValidDate(monday, "2026-03-06") {
		t.Error("expected Friday to be rejected")
	}
}

func TestIsWorkingDay(t *testing.T) {
	tests := []struct {
		day  time.Time
		want bool
	}{
		{time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},  // Sunday
		{time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), true},  // Thursday
		{time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), false}, // Friday
		{time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), false}, // Saturday
	}

	for _, tt := range tests {
		if got := IsWorkingDay(tt.day); got != tt.want {
			t.Errorf("IsWorkingDay(%s) = %v, want %v", tt.day.Weekday(), got, tt.want)
		}
	}
}
