package memberpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestDescriptor(t *testing.T) {
	svc := File_member_proto.Services().ByName("MemberService")
	require.NotNil(t, svc)
	assert.Equal(t, "member.MemberService", string(svc.FullName()))

	m := svc.Methods().ByName("FindMember")
	require.NotNil(t, m)
	assert.Equal(t, "member.FindByMemberReq", string(m.Input().FullName()))
	assert.Equal(t, "member.FindByMemberRes", string(m.Output().FullName()))
}

func TestFindByMemberReq_Wire(t *testing.T) {
	b, err := proto.Marshal(&FindByMemberReq{Param: &FindMemberParam{MemberId: "bob"}})
	require.NoError(t, err)

	num, typ, n := protowire.ConsumeTag(b)
	require.Greater(t, n, 0)
	assert.Equal(t, protowire.Number(1), num)
	assert.Equal(t, protowire.BytesType, typ)

	param, m := protowire.ConsumeBytes(b[n:])
	require.Greater(t, m, 0)
	num, typ, n = protowire.ConsumeTag(param)
	require.Greater(t, n, 0)
	assert.Equal(t, protowire.Number(2), num)
	assert.Equal(t, protowire.BytesType, typ)
	v, _ := protowire.ConsumeString(param[n:])
	assert.Equal(t, "bob", v)

	var res FindByMemberRes
	raw, err := proto.Marshal(&FindByMemberRes{Success: true, Info: &MemberInfo{Id: "bob", DisplayName: "Bob"}})
	require.NoError(t, err)
	require.NoError(t, proto.Unmarshal(raw, &res))
	assert.Equal(t, "Bob", res.GetInfo().GetDisplayName())
	assert.Nil(t, (*FindByMemberRes)(nil).GetInfo())
}
