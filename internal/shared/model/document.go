package model

import "time"

// Document 文档
//
// RoleTitle 是创建时文档所有者角色的快照，之后不会随所有者角色变化而更新。
type Document struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"ownerId" bson:"owner_id"`
	RoleTitle   string    `json:"role" bson:"role_title"`
	Title       string    `json:"title" bson:"title"`
	Content     string    `json:"content" bson:"content"`
	DateCreated time.Time `json:"dateCreated" bson:"date_created"`
}
