// Package role 角色管理 API
//
// 角色由种子数据或 admin 接口创建，认证子系统只做 title → 引用的解析。
package role

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"

	"github.com/google/uuid"
)

// Store 角色存储接口
type Store interface {
	CreateRole(ctx context.Context, role *model.Role) error
	ListRoles(ctx context.Context) ([]*model.Role, error)
}

// Handler 角色 HTTP 处理器
type Handler struct {
	store Store
}

// NewHandler 创建角色处理器
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册角色相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/roles", h.Create)
	mux.HandleFunc("GET /api/roles", h.List)
}

type createRequest struct {
	Title       string `json:"title"`
	AccessLevel int    `json:"accessLevel"`
}

// Create 创建角色：仅 admin
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())
	if !auth.IsAdmin(actor) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Please provide the role title")
		return
	}

	role := &model.Role{
		ID:          uuid.NewString(),
		Title:       req.Title,
		AccessLevel: req.AccessLevel,
	}
	if err := h.store.CreateRole(r.Context(), role); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "The Role already exists")
			return
		}
		log.Printf("[role.create] CreateRole error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create role")
		return
	}

	log.Printf("[role] Role created: %s (%s)", role.Title, role.ID)
	writeJSON(w, http.StatusCreated, role)
}

// List 列出全部角色：任何已认证用户
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.store.ListRoles(r.Context())
	if err != nil {
		log.Printf("[role.list] ListRoles error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
