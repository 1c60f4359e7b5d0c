package repository

import (
	"context"
	"fmt"

	"realtime_chat_service/internal/chat/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const messageSchema = `
CREATE TABLE IF NOT EXISTS chat_messages (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT   NOT NULL,
	user_a          TEXT   NOT NULL,
	user_b          TEXT   NOT NULL,
	sender_id       TEXT   NOT NULL,
	content         TEXT   NOT NULL,
	created_at      BIGINT NOT NULL,
	seen_at         BIGINT
);
CREATE INDEX IF NOT EXISTS chat_messages_conversation_idx ON chat_messages (conversation_id, created_at, id);
CREATE INDEX IF NOT EXISTS chat_messages_user_a_idx ON chat_messages (user_a, created_at DESC);
CREATE INDEX IF NOT EXISTS chat_messages_user_b_idx ON chat_messages (user_b, created_at DESC);
`

const messageColumns = `id, conversation_id, sender_id, content, created_at, seen_at`

type postgresMessageRepository struct {
	db *pgxpool.Pool
}

// NewPostgresMessageRepository create a MessageRepository on postgreSQL
func NewPostgresMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &postgresMessageRepository{db: db}
}

// EnsurePostgresSchema create chat_messages when missing
func EnsurePostgresSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, messageSchema); err != nil {
		return fmt.Errorf("create chat_messages: %w", err)
	}
	return nil
}

func (r *postgresMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	a, b := msg.ConversationID.Participants()
	_, err := r.db.Exec(ctx, `
      INSERT INTO chat_messages(id, conversation_id, user_a, user_b, sender_id, content, created_at, seen_at)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `,
		msg.ID, string(msg.ConversationID), a, b, msg.SenderID, msg.Content, msg.CreatedAt, msg.SeenAt,
	)
	return err
}

func (r *postgresMessageRepository) History(ctx context.Context, conversationID domain.ConversationID) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
      SELECT `+messageColumns+`
      FROM chat_messages
      WHERE conversation_id = $1
      ORDER BY created_at, id
    `, string(conversationID))
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return scanMessages(rows)
}

func (r *postgresMessageRepository) MarkSeen(ctx context.Context, conversationID domain.ConversationID, viewerID string, seenAt int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
      UPDATE chat_messages
      SET seen_at = $1
      WHERE conversation_id = $2 AND sender_id <> $3 AND seen_at IS NULL
    `, seenAt, string(conversationID), viewerID)
	if err != nil {
		return 0, fmt.Errorf("mark seen: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresMessageRepository) UnseenByConversation(ctx context.Context, viewerID string) ([]domain.ConversationUnseen, error) {
	rows, err := r.db.Query(ctx, `
      SELECT conversation_id, COUNT(*)
      FROM chat_messages
      WHERE (user_a = $1 OR user_b = $1) AND sender_id <> $1 AND seen_at IS NULL
      GROUP BY conversation_id
    `, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query unseen: %w", err)
	}
	defer rows.Close()

	var out []domain.ConversationUnseen
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		cid := domain.ConversationID(id)
		peer, _ := cid.Peer(viewerID)
		out = append(out, domain.ConversationUnseen{ConversationID: cid, PeerID: peer, Count: count})
	}
	return out, rows.Err()
}

func (r *postgresMessageRepository) LastMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
      SELECT `+messageColumns+` FROM (
        SELECT DISTINCT ON (conversation_id) `+messageColumns+`
        FROM chat_messages
        WHERE user_a = $1 OR user_b = $1
        ORDER BY conversation_id, created_at DESC, id DESC
      ) last
      ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query last messages: %w", err)
	}
	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]domain.Message, error) {
	defer rows.Close()
	out := []domain.Message{}
	for rows.Next() {
		var (
			m  domain.Message
			id string
		)
		if err := rows.Scan(&m.ID, &id, &m.SenderID, &m.Content, &m.CreatedAt, &m.SeenAt); err != nil {
			return nil, err
		}
		m.ConversationID = domain.ConversationID(id)
		out = append(out, m)
	}
	return out, rows.Err()
}
