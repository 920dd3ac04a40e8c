package chat

// ConversationKey is the canonical identity of a conversation: the unordered
// user pair normalized so UserAID < UserBID, plus the item context.
// ItemID 0 means the conversation has no item context; the zero value is part
// of the key, not a wildcard.
type ConversationKey struct {
	UserAID uint
	UserBID uint
	ItemID  uint
}

// CanonicalKey normalizes an unordered user pair and optional item id into a
// ConversationKey. Both argument orders produce the same key. Fails with
// ErrSelfConversation when the two user ids are equal.
func CanonicalKey(userID, otherID, itemID uint) (ConversationKey, error) {
	if userID == otherID {
		return ConversationKey{}, ErrSelfConversation
	}
	if userID > otherID {
		userID, otherID = otherID, userID
	}
	return ConversationKey{UserAID: userID, UserBID: otherID, ItemID: itemID}, nil
}
