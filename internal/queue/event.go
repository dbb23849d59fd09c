// Package queue defines message payloads exchanged over the message broker.
package queue

// FriendAcceptedEvent is published when a friend request is accepted
// and both directions of the relationship exist. It contains enough
// information for downstream consumers to log or notify without
// querying the primary database.
type FriendAcceptedEvent struct {
	RequesterID uint64 `json:"requester_id"`
	AccepterID  uint64 `json:"accepter_id"`
	AcceptedAt  string `json:"accepted_at"`
}
