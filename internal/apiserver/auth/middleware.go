package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
)

// TokenHeader 令牌请求头
const TokenHeader = "x-access-token"

// maxBodySniff 从请求体里找 token 时最多读取的字节数
const maxBodySniff = 1 << 20

// 免认证路由精确匹配（method + path）
var publicExact = map[string]bool{
	"POST /api/users":       true, // 注册
	"POST /api/users/login": true,
}

// 免认证路由前缀匹配
var publicPrefixes = []string{
	"/health",
	"/metrics",
}

func isPublicRoute(method, path string) bool {
	if publicExact[method+" "+path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// extractToken 按约定顺序提取令牌：先查请求头，再查请求体的 token 字段
//
// 请求体被读取后会原样放回，下游 Handler 仍可正常解码。
func extractToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySniff))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Token
}

// Middleware 创建认证中间件
//
// 公开路由直接放行；其余路由要求有效令牌，
// 验证通过后把用户快照注入 context 供下游 Handler 使用。
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 公开路由：直接放行
			if isPublicRoute(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusForbidden, "No token provided.")
				return
			}

			claims, err := VerifyToken(cfg, token)
			if err != nil {
				log.Printf("[auth] token verify error: %v", err)
				writeError(w, http.StatusUnauthorized, "Failed to authenticate token.")
				return
			}

			// 注入身份快照到 context（快照本身不含密码哈希）
			identity := claims.User
			ctx := WithIdentity(r.Context(), &identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
