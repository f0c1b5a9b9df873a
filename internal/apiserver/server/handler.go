// Package server 组装 API Server 的路由和中间件
package server

import (
	"encoding/json"
	"net/http"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/apiserver/document"
	"docs-admin/internal/apiserver/role"
	"docs-admin/internal/apiserver/user"
	"docs-admin/internal/shared/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler 顶层 HTTP 处理器，持有所有依赖
type Handler struct {
	store   storage.Store
	authCfg auth.Config
	metrics *Metrics
}

// NewHandler 创建顶层处理器
//
// store 通过依赖注入传入，所有子 Handler 共享同一个句柄。
func NewHandler(store storage.Store, authCfg auth.Config) *Handler {
	return &Handler{
		store:   store,
		authCfg: authCfg,
		metrics: NewMetrics("docs_admin"),
	}
}

// Router 构建完整的请求处理链：metrics → auth → mux
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	user.NewHandler(h.store, h.authCfg).RegisterRoutes(mux)
	role.NewHandler(h.store).RegisterRoutes(mux)
	document.NewHandler(h.store).RegisterRoutes(mux)

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = auth.Middleware(h.authCfg)(handler)
	handler = h.metrics.Instrument(handler)
	return handler
}

// Health 健康检查
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
