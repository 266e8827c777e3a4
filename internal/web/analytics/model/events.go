// Package model contains the persisted event documents of analytics.
package model

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType kind of tracked interaction
type EventType string

const (
	// EventTypePageView a rendered page
	EventTypePageView EventType = "page_view"
	// EventTypePostView a rendered post
	EventTypePostView EventType = "post_view"
	// EventTypeUserAction like/comment/share and similar
	EventTypeUserAction EventType = "user_action"
	// EventTypeSearch a search query
	EventTypeSearch EventType = "search"
	// EventTypeError a client-side error report
	EventTypeError EventType = "error"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypePageView, EventTypePostView,
		EventTypeUserAction, EventTypeSearch, EventTypeError:
		return true
	}

	return false
}

// EventRetention events expire from the store after this long.
const EventRetention = 365 * 24 * time.Hour

// Event is an immutable, append-only fact record. Rows expire via the
// TTL index on Timestamp.
type Event struct {
	// ID unique identifier for the event
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Type kind of interaction
	Type EventType `bson:"type" json:"type"`
	// UserID the acting user, empty for anonymous visitors
	UserID string `bson:"userId,omitempty" json:"user_id,omitempty"`
	// SessionID browser session identifier
	SessionID string `bson:"sessionId" json:"session_id"`
	// PostID the viewed/acted-on post, when applicable
	PostID string `bson:"postId,omitempty" json:"post_id,omitempty"`
	// Page the page path the event happened on
	Page string `bson:"page" json:"page"`
	// Action user action name, e.g. like/comment/share
	Action string `bson:"action,omitempty" json:"action,omitempty"`
	// SearchQuery free-text query for search events
	SearchQuery string `bson:"searchQuery,omitempty" json:"search_query,omitempty"`
	// UserAgent raw user-agent header
	UserAgent string `bson:"userAgent" json:"user_agent"`
	// IPAddress source address from the request envelope
	IPAddress string `bson:"ipAddress" json:"ip_address"`
	// Referrer referer header, nil when absent
	Referrer *string `bson:"referrer,omitempty" json:"referrer,omitempty"`
	// Device classification derived from the user-agent
	Device Device `bson:"device" json:"device"`
	// Location geo classification; always nil, the geo-IP service was
	// never wired in
	Location *Location `bson:"location,omitempty" json:"location,omitempty"`
	// Duration seconds spent on the page
	Duration int `bson:"duration" json:"duration"`
	// Metadata free-form extra fields from the client
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	// Timestamp event time, drives the TTL expiry
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// DeviceType coarse device class
type DeviceType string

const (
	// DeviceDesktop default class
	DeviceDesktop DeviceType = "desktop"
	// DeviceMobile user-agent mentions mobile
	DeviceMobile DeviceType = "mobile"
	// DeviceTablet user-agent mentions tablet
	DeviceTablet DeviceType = "tablet"
)

// Device classification derived from the user-agent string.
type Device struct {
	Type    DeviceType `bson:"type" json:"type"`
	Browser string     `bson:"browser" json:"browser"`
	OS      string     `bson:"os" json:"os"`
}

// Location geo fields; never populated, kept for schema compatibility.
type Location struct {
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
	Region   string `bson:"region,omitempty" json:"region,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

// NewEvent create a new event stamped with the shared clock.
func NewEvent() *Event {
	return &Event{
		ID:        primitive.NewObjectID(),
		Timestamp: gutils.Clock.GetUTCNow(),
	}
}
