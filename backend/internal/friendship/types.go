package friendship

import (
	"strings"
	"time"
)

// Kind is the type of a relationship edge between two users.
type Kind string

const (
	KindPending  Kind = "PENDING"
	KindAccepted Kind = "ACCEPTED"
	KindDeclined Kind = "DECLINED"
	KindBlocked  Kind = "BLOCKED"
)

// Kinds lists every relationship type managed here, in a stable order.
var Kinds = []Kind{KindPending, KindAccepted, KindDeclined, KindBlocked}

// Valid reports whether k is one of the managed relationship types.
func (k Kind) Valid() bool {
	switch k {
	case KindPending, KindAccepted, KindDeclined, KindBlocked:
		return true
	}
	return false
}

// Label is the lower-case form used in responses ("accepted", "blocked", ...).
func (k Kind) Label() string {
	return strings.ToLower(string(k))
}

// ParseDecision maps a respond decision onto the kind it produces.
// Matching is case-insensitive; pending is not a decision.
func ParseDecision(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted":
		return KindAccepted, true
	case "declined":
		return KindDeclined, true
	case "blocked":
		return KindBlocked, true
	}
	return "", false
}

// Edge is a directed relationship From -> To.
type Edge struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Involves reports whether the edge connects a and b in either direction.
func (e Edge) Involves(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// Reason is the machine-readable code of a rejected transition.
type Reason string

const (
	ReasonSelfRequest     Reason = "self_request"
	ReasonBlockedByYou    Reason = "blocked_by_you"
	ReasonBlockedByThem   Reason = "blocked_by_them"
	ReasonRequestSent     Reason = "request_already_sent"
	ReasonRequestReceived Reason = "request_already_received"
	ReasonAlreadyFriends  Reason = "already_friends"
)

var reasonMessages = map[Reason]string{
	ReasonSelfRequest:     "You cannot send a friend request to yourself",
	ReasonBlockedByYou:    "You have blocked this user",
	ReasonBlockedByThem:   "This user has blocked you",
	ReasonRequestSent:     "You have already sent a friend request to this user",
	ReasonRequestReceived: "This user has already sent you a friend request",
	ReasonAlreadyFriends:  "You are already friends with this user",
}

// Message returns the caller-facing text for the reason.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}
