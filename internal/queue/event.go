// Package queue defines message payloads exchanged over the message broker.
package queue

// StatusChangedEvent is published whenever the site's active status
// flips, by an admin through the status panel or by the countdown
// auto-switch. Downstream consumers log or notify without querying the
// primary database.
type StatusChangedEvent struct {
    StatusID  uint64 `json:"status_id"`
    StatusKey string `json:"status_key"`
    ChangedAt string `json:"changed_at"`
    // Source is "admin" or "countdown".
    Source string `json:"source"`
}
