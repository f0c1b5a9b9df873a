package auth

import (
	"docs-admin/internal/shared/model"
)

// 访问策略：纯函数，只依赖 (请求者身份, 目标资源)。
// 策略不查库，角色信息来自令牌快照。

// IsAdmin 请求者是否持有 admin 角色
func IsAdmin(actor *Identity) bool {
	return actor != nil && actor.RoleTitle == model.RoleTitleAdmin
}

// CanViewProfile 本人或 admin 可查看用户资料
func CanViewProfile(actor *Identity, targetUserID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == targetUserID || IsAdmin(actor)
}

// CanUpdateProfile 只有本人可更新自己的资料
func CanUpdateProfile(actor *Identity, targetUserID string) bool {
	return actor != nil && actor.ID == targetUserID
}

// CanDeleteProfile 本人或 admin 可删除用户
func CanDeleteProfile(actor *Identity, targetUserID string) bool {
	if actor == nil {
		return false
	}
	return actor.ID == targetUserID || IsAdmin(actor)
}

// CanListAllUsers 只有 admin 可列出全部用户
func CanListAllUsers(actor *Identity) bool {
	return IsAdmin(actor)
}

// CanListDocumentsOf 任何已认证用户可查看任意用户的文档列表
func CanListDocumentsOf(actor *Identity, ownerID string) bool {
	return actor != nil
}

// CanModifyDocument 文档所有者或 admin 可修改/删除文档
func CanModifyDocument(actor *Identity, doc *model.Document) bool {
	if actor == nil || doc == nil {
		return false
	}
	return actor.ID == doc.OwnerID || IsAdmin(actor)
}
