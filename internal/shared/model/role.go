package model

// DefaultRoleTitle 注册时未指定角色时使用的默认角色
const DefaultRoleTitle = RoleTitleViewer

// 内置角色 title 常量
const (
	RoleTitleViewer = "viewer"
	RoleTitleStaff  = "staff"
	RoleTitleAdmin  = "admin"
)

// Role 角色
//
// Title 全局唯一。AccessLevel 为权限等级（数值越小权限越低）。
// 角色只由种子数据或管理员接口创建，认证子系统只做 title → 引用的解析。
type Role struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	AccessLevel int    `json:"accessLevel" bson:"access_level"`
}
