// Package notifyhub keeps a user's notification feed current without
// page reloads. Stores publish an event after every notification
// write; the Hub fans events out to live subscribers, and Feed applies
// them to an in-memory snapshot the same way the browser client does.
package notifyhub

import (
	"github.com/mizanlegal/mizan/internal/domain/models"
)

// EventKind distinguishes feed events.
type EventKind string

const (
	// EventInserted announces a newly created notification.
	EventInserted EventKind = "inserted"
	// EventUpdated announces a change to an existing notification,
	// typically a read-state flip.
	EventUpdated EventKind = "updated"
)

// Event is one change to a user's notification feed.
type Event struct {
	Kind         EventKind           `json:"kind"`
	Notification models.Notification `json:"notification"`
}

// Feed is a snapshot of a user's notification list plus its unread
// badge count. Items are ordered newest first by creation time.
type Feed struct {
	Items  []models.Notification
	Unread int
}

// NewFeed builds a feed from an initial load, typically the store's
// recent-notifications query. Items are assumed already sorted newest
// first; the unread count is derived from the items plus the total
// reported by the store (the list may be truncated).
func NewFeed(items []models.Notification, unread int) Feed {
	if unread < 0 {
		unread = 0
	}
	return Feed{Items: items, Unread: unread}
}

// Apply folds one event into the feed and returns the updated feed.
// Inserted events are placed by creation time, newest first; updated
// events replace the item with the matching ID. Matching is by ID, so
// a redelivered insert collapses into an update and an update for an
// unknown ID leaves the list untouched. The unread count never drops
// below zero.
func (f Feed) Apply(ev Event) Feed {
	switch ev.Kind {
	case EventInserted:
		return f.insert(ev.Notification)
	case EventUpdated:
		return f.update(ev.Notification)
	default:
		return f
	}
}

func (f Feed) insert(n models.Notification) Feed {
	// Redelivered insert: the ID is already in the list, so treat it
	// as an update instead of growing the list and the counter again.
	for _, item := range f.Items {
		if item.ID == n.ID {
			return f.update(n)
		}
	}

	// Find the insertion point: before the first item older than n,
	// so equal timestamps keep arrival order.
	pos := len(f.Items)
	for i, item := range f.Items {
		if item.CreatedAt.Before(n.CreatedAt) {
			pos = i
			break
		}
	}

	items := make([]models.Notification, 0, len(f.Items)+1)
	items = append(items, f.Items[:pos]...)
	items = append(items, n)
	items = append(items, f.Items[pos:]...)

	unread := f.Unread
	if !n.IsRead {
		unread++
	}
	return Feed{Items: items, Unread: unread}
}

func (f Feed) update(n models.Notification) Feed {
	for i, item := range f.Items {
		if item.ID != n.ID {
			continue
		}

		items := make([]models.Notification, len(f.Items))
		copy(items, f.Items)
		items[i] = n

		unread := f.Unread
		switch {
		case !item.IsRead && n.IsRead:
			unread--
		case item.IsRead && !n.IsRead:
			unread++
		}
		if unread < 0 {
			unread = 0
		}
		return Feed{Items: items, Unread: unread}
	}

	// Unknown ID: the item fell off the truncated list. Keep the feed
	// as-is rather than guessing at the counter.
	return f
}
