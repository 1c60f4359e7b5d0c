package app

import (
	"context"
	"fmt"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/repository"
	"realtime_chat_service/pkg/token"
)

// Authenticator validates bearer credentials: jwt signature + expiry, optionally the member session
type Authenticator struct {
	sessions     repository.SessionRepository
	checkSession bool
}

// NewAuthenticator sessions may be nil when checkSession is false
func NewAuthenticator(sessions repository.SessionRepository, checkSession bool) *Authenticator {
	return &Authenticator{sessions: sessions, checkSession: checkSession && sessions != nil}
}

// Authenticate returns the member id the credential belongs to
func (a *Authenticator) Authenticate(ctx context.Context, credential string) (string, error) {
	claims, err := token.ParseJWTWrapper(credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	if !a.checkSession {
		return claims.MemberID, nil
	}

	// 登出或被踢出後 token 仍未過期, 以 member service 的 session 為準
	session, err := a.sessions.FindSession(ctx, claims.MemberID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	if session.Token != credential || session.IsExpired() {
		return "", fmt.Errorf("%w: session revoked", domain.ErrAuth)
	}
	return claims.MemberID, nil
}
