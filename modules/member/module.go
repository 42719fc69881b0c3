package member

import (
	"vfd-portal/core/database"
	"vfd-portal/modules/member/repository"
	"vfd-portal/modules/member/service"
)

// Init builds the member service used to resolve authenticated actors.
func Init(db database.IDatabase) *service.MemberService {
	return service.NewMemberService(repository.NewMemberRepository(db))
}
