package repository

import (
	"context"
	"fmt"

	"realtime_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository persistent message store, keyed by (conversation_id, created_at, id)
type MessageRepository interface {
	// Insert 新增一則訊息 (seen_at 為空)
	Insert(ctx context.Context, msg *domain.Message) error
	// History 對話全部訊息, 舊到新
	History(ctx context.Context, conversationID domain.ConversationID) ([]domain.Message, error)
	// MarkSeen 將對方傳來且未讀的訊息設為已讀, 回傳更新筆數
	MarkSeen(ctx context.Context, conversationID domain.ConversationID, viewerID string, seenAt int64) (int64, error)
	// UnseenByConversation viewer 每個對話的未讀數 (只含 >0)
	UnseenByConversation(ctx context.Context, viewerID string) ([]domain.ConversationUnseen, error)
	// LastMessages user 參與的每個對話最後一則訊息
	LastMessages(ctx context.Context, userID string) ([]domain.Message, error)
}

const messageCollection = "chat_messages"

// messageDocument mongo layout, participants lets per-user queries use an index
type messageDocument struct {
	ID             string   `bson:"_id"`
	ConversationID string   `bson:"conversation_id"`
	Participants   []string `bson:"participants"`
	SenderID       string   `bson:"sender_id"`
	Content        string   `bson:"content"`
	CreatedAt      int64    `bson:"created_at"`
	SeenAt         *int64   `bson:"seen_at"`
}

func toDocument(m *domain.Message) messageDocument {
	a, b := m.ConversationID.Participants()
	return messageDocument{
		ID:             m.ID,
		ConversationID: string(m.ConversationID),
		Participants:   []string{a, b},
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		SeenAt:         m.SeenAt,
	}
}

func (d messageDocument) toMessage() domain.Message {
	return domain.Message{
		ID:             d.ID,
		ConversationID: domain.ConversationID(d.ConversationID),
		SenderID:       d.SenderID,
		Content:        d.Content,
		CreatedAt:      d.CreatedAt,
		SeenAt:         d.SeenAt,
	}
}

type mongoMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository on mongo
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		coll: db.Collection(messageCollection),
	}
}

// EnsureMongoIndexes create the indexes the queries rely on
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(messageCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "sender_id", Value: 1}, {Key: "seen_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create message indexes: %w", err)
	}
	return nil
}

func (r *mongoMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, toDocument(msg))
	return err
}

func (r *mongoMessageRepository) History(ctx context.Context, conversationID domain.ConversationID) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"conversation_id": string(conversationID)}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	return decodeMessages(ctx, cur)
}

func (r *mongoMessageRepository) MarkSeen(ctx context.Context, conversationID domain.ConversationID, viewerID string, seenAt int64) (int64, error) {
	filter := bson.M{
		"conversation_id": string(conversationID),
		"sender_id":       bson.M{"$ne": viewerID},
		"seen_at":         nil,
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"seen_at": seenAt}})
	if err != nil {
		return 0, fmt.Errorf("mark seen: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoMessageRepository) UnseenByConversation(ctx context.Context, viewerID string) ([]domain.ConversationUnseen, error) {
	pipeline := mongo.Pipeline{
		// 1. 對方傳來且未讀
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "participants", Value: viewerID},
			{Key: "sender_id", Value: bson.D{{Key: "$ne", Value: viewerID}}},
			{Key: "seen_at", Value: nil},
		}}},
		// 2. 依對話分組計數
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$conversation_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}

	var results []domain.ConversationUnseen
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	for i := range results {
		results[i].PeerID, _ = results[i].ConversationID.Peer(viewerID)
	}
	return results, nil
}

func (r *mongoMessageRepository) LastMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "participants", Value: userID}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		// 每個對話取第一筆 (最新)
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$conversation_id"},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}
	return decodeMessages(ctx, cur)
}

func decodeMessages(ctx context.Context, cur *mongo.Cursor) ([]domain.Message, error) {
	var docs []messageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	out := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toMessage())
	}
	return out, nil
}
