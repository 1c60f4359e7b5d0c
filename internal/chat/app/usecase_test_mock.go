package app

import (
	"context"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/repository"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// Insert mock insert message
func (m *MockMessageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// History mock conversation history
func (m *MockMessageRepository) History(ctx context.Context, conversationID domain.ConversationID) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkSeen mock mark seen
func (m *MockMessageRepository) MarkSeen(ctx context.Context, conversationID domain.ConversationID, viewerID string, seenAt int64) (int64, error) {
	args := m.Called(ctx, conversationID, viewerID, seenAt)
	return args.Get(0).(int64), args.Error(1)
}

// UnseenByConversation mock unseen count
func (m *MockMessageRepository) UnseenByConversation(ctx context.Context, viewerID string) ([]domain.ConversationUnseen, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationUnseen), args.Error(1)
	}
	return nil, args.Error(1)
}

// LastMessages mock last message per conversation
func (m *MockMessageRepository) LastMessages(ctx context.Context, userID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserDirectory Mock UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

// FindUser mock find user
func (m *MockUserDirectory) FindUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish mock publish
func (m *MockEventPublisher) Publish(ctx context.Context, event repository.MessageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Close mock close
func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSessionRepository Mock SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

// FindSession mock find session
func (m *MockSessionRepository) FindSession(ctx context.Context, memberID string) (*domain.MemberSession, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.MemberSession), args.Error(1)
	}
	return nil, args.Error(1)
}
