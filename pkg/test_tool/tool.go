package testtool

import (
	"context"
	"log"
	"net"

	memberpb "realtime_chat_service/pkg/proto/member"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"google.golang.org/grpc"
)

// SetupContainer 通用函式來啟動測試容器
func SetupContainer(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, "", "", err
	}

	// 轉換 ExposedPorts[0] 為 nat.Port
	natPort, err := nat.NewPort("tcp", req.ExposedPorts[0][:len(req.ExposedPorts[0])-4]) // 去掉 "/tcp"
	if err != nil {
		return nil, "", "", err
	}

	port, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return nil, "", "", err
	}

	return container, host, port.Port(), nil
}

// StartMockMemberGRPCServer 啟動 mock member grpc server, users 為可查到的會員
func StartMockMemberGRPCServer(users map[string]*memberpb.MemberInfo) (*grpc.Server, string) {
	listener, err := net.Listen("tcp", "127.0.0.1:0") // 隨機取得可用 Port
	if err != nil {
		log.Fatalf("❌ Failed to start gRPC listener: %v", err)
	}

	grpcServer := grpc.NewServer()
	memberpb.RegisterMemberServiceServer(grpcServer, &MockMemberService{Users: users})

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Printf("mock gRPC member service stopped: %v", err)
		}
	}()

	return grpcServer, listener.Addr().String()
}

// MockMemberService Mock Member gRPC 服務
type MockMemberService struct {
	memberpb.UnimplementedMemberServiceServer
	Users map[string]*memberpb.MemberInfo
}

// FindMember lookup in Users
func (m *MockMemberService) FindMember(_ context.Context, in *memberpb.FindByMemberReq) (*memberpb.FindByMemberRes, error) {
	memberID := in.GetParam().GetMemberId()
	if memberID == "" {
		return &memberpb.FindByMemberRes{Success: false, Message: "missing param"}, nil
	}
	info, ok := m.Users[memberID]
	if !ok {
		return &memberpb.FindByMemberRes{Success: false, Info: &memberpb.MemberInfo{}, Message: "member not found"}, nil
	}
	return &memberpb.FindByMemberRes{Success: true, Info: info, Message: "find success"}, nil
}
