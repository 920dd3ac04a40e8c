package chat

import "errors"

var (
	// ErrSelfConversation rejects a conversation between a user and themselves.
	ErrSelfConversation = errors.New("chat: conversation participants must differ")

	// ErrEmptyBody rejects a message whose body is blank after trimming.
	ErrEmptyBody = errors.New("chat: message body is empty")

	// ErrNotParticipant rejects a sender/receiver pair that does not match
	// the conversation's two participants.
	ErrNotParticipant = errors.New("chat: sender and receiver are not the conversation participants")

	// ErrConversationNotFound marks a lookup of a conversation id that does
	// not exist.
	ErrConversationNotFound = errors.New("chat: conversation not found")

	// ErrStoreUnavailable wraps storage failures, including a failed
	// get-or-create where both the insert and the re-query failed.
	ErrStoreUnavailable = errors.New("chat: store unavailable")
)
