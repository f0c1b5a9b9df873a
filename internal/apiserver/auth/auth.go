// Package auth 用户认证与授权：JWT 令牌管理、密码哈希、HTTP 中间件、访问策略
package auth

import (
	"context"
	"fmt"
	"time"

	"docs-admin/internal/shared/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// contextKey context 键类型
type contextKey string

const ctxKeyIdentity contextKey = "auth_identity"

// Identity 签发令牌时的用户快照
//
// 注意：这是签发时刻的快照，不反映数据库当前状态。
// 永远不携带密码哈希。
type Identity struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Name      model.Name `json:"name"`
	Email     string     `json:"email"`
	RoleTitle string     `json:"roleTitle"`
	LoggedIn  bool       `json:"loggedIn"`
}

// IdentityOf 从用户记录提取快照
func IdentityOf(user *model.User) Identity {
	return Identity{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		RoleTitle: user.RoleTitle,
		LoggedIn:  user.LoggedIn,
	}
}

// Config 认证配置
type Config struct {
	JWTSecret string        `yaml:"-"`         // 只从 JWT_SECRET 环境变量读取
	TokenTTL  time.Duration `yaml:"token_ttl"` // 令牌有效期，默认 24h
}

// DefaultConfig 返回默认认证配置
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// ============================================================================
// 密码哈希
// ============================================================================

// HashPassword 使用 bcrypt 哈希密码
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

// CheckPassword 验证密码（bcrypt 内部为常数时间比较）
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ============================================================================
// JWT Token
// ============================================================================

// Claims JWT 声明：注册声明 + 用户快照
type Claims struct {
	jwt.RegisteredClaims
	User Identity `json:"user"`
}

// IssueToken 为用户签发令牌
//
// 快照、签发时间和过期时间（签发时间 + TokenTTL）一并编码进令牌。
// 对 (用户, 密钥, 时钟) 纯函数，无副作用。
func IssueToken(cfg Config, user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
		User: IdentityOf(user),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// VerifyToken 解析并验证 JWT
//
// 失败情形：无法解析、签名不匹配、已过期（jwt.ErrTokenExpired）。
// 成功时返回签发时刻的快照原样。
func VerifyToken(cfg Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithIdentity 将认证身份注入 context
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFrom 从 context 获取认证身份，未认证时返回 nil
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKeyIdentity).(*Identity)
	return id
}
