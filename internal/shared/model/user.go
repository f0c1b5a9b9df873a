// Package model 定义核心数据模型
package model

import "time"

// Name 用户姓名（嵌套结构，first/last 均为必填）
type Name struct {
	First string `json:"first" bson:"first"`
	Last  string `json:"last" bson:"last"`
}

// User 用户
//
// Username 和 Email 全局唯一（由存储层唯一索引保证）。
// Email 写入前统一转为小写。
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Name         Name      `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"` // never expose in JSON
	RoleID       string    `json:"role" bson:"role_id"`
	RoleTitle    string    `json:"roleTitle" bson:"role_title"`
	LoggedIn     bool      `json:"loggedIn" bson:"logged_in"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
