package repository

import (
	"context"
	"fmt"

	"realtime_chat_service/internal/chat/domain"
	memberpb "realtime_chat_service/pkg/proto/member"
)

// UserDirectory external user directory lookups
type UserDirectory interface {
	// FindUser returns domain.ErrNotFound when the id does not resolve
	FindUser(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type grpcUserDirectory struct {
	client memberpb.MemberServiceClient
}

// NewGRPCUserDirectory user directory on the member grpc service
func NewGRPCUserDirectory(client memberpb.MemberServiceClient) UserDirectory {
	return &grpcUserDirectory{client: client}
}

func (d *grpcUserDirectory) FindUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	res, err := d.client.FindMember(ctx, &memberpb.FindByMemberReq{
		Param: &memberpb.FindMemberParam{MemberId: userID},
	})
	if err != nil {
		return nil, fmt.Errorf("find member %s: %w", userID, err)
	}
	info := res.GetInfo()
	if !res.GetSuccess() || info.GetId() == "" {
		return nil, fmt.Errorf("%w: member %s", domain.ErrNotFound, userID)
	}

	name := info.GetDisplayName()
	if name == "" {
		name = info.GetEmail()
	}
	return &domain.UserProfile{ID: info.GetId(), DisplayName: name}, nil
}
