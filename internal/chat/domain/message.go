package domain

// Message 一則 1 對 1 訊息, 建立後只有 SeenAt 會由 nil 變為有值
type Message struct {
	ID             string         `bson:"_id" json:"id"`
	ConversationID ConversationID `bson:"conversation_id" json:"conversation_id"`
	SenderID       string         `bson:"sender_id" json:"sender_id"`
	Content        string         `bson:"content" json:"content"`
	CreatedAt      int64          `bson:"created_at" json:"created_at"` // unix nano
	SeenAt         *int64         `bson:"seen_at" json:"seen_at"`
}

// IsSeen seen_at is set
func (m *Message) IsSeen() bool {
	return m.SeenAt != nil
}

// ConversationUnseen unseen count of one conversation for a viewer
type ConversationUnseen struct {
	ConversationID ConversationID `bson:"_id" json:"conversation_id"`
	PeerID         string         `bson:"-" json:"peer_id"`
	Count          int            `bson:"count" json:"count"`
}

// ConversationSummary one row of the recent chats list
type ConversationSummary struct {
	ConversationID ConversationID `json:"conversation_id"`
	PeerID         string         `json:"peer_id"`
	PeerName       string         `json:"peer_name,omitempty"`
	LastMessage    *Message       `json:"last_message"`
	UnseenCount    int            `json:"unseen_count"`
}

// RecentChats recent chats, newest first, with the badge total
type RecentChats struct {
	Chats       []ConversationSummary `json:"chats"`
	TotalUnseen int                   `json:"total_unseen_messages"`
}

// UserProfile public profile from the user directory
type UserProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
