// Package user 账户生命周期 API：注册、登录、登出、资料管理
//
// 状态机：Anonymous → Registered → LoggedIn ⇄ LoggedOut → Deleted。
// 授权判定全部走 auth 包的策略函数，Handler 本身不做角色判断。
package user

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"

	"github.com/google/uuid"
)

// Store 用户存储接口
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	SetUserLoggedIn(ctx context.Context, id string, loggedIn bool) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetRoleByTitle(ctx context.Context, title string) (*model.Role, error)
	ListDocumentsByOwner(ctx context.Context, ownerID string) ([]*model.Document, error)
}

// Handler 账户 HTTP 处理器
type Handler struct {
	store Store
	cfg   auth.Config
}

// NewHandler 创建账户处理器
func NewHandler(store Store, cfg auth.Config) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes 注册账户相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users", h.Create)
	mux.HandleFunc("POST /api/users/login", h.Login)
	mux.HandleFunc("POST /api/users/logout", h.Logout)
	mux.HandleFunc("GET /api/users", h.List)
	mux.HandleFunc("GET /api/users/{id}", h.Get)
	mux.HandleFunc("PUT /api/users/{id}", h.Update)
	mux.HandleFunc("DELETE /api/users/{id}", h.Delete)
	mux.HandleFunc("GET /api/users/{id}/documents", h.Documents)
}

// ============================================================================
// 请求/响应类型
// ============================================================================

type createRequest struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateRequest struct {
	Username  *string `json:"username"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// ============================================================================
// Handlers
// ============================================================================

// Create 用户注册
//
// 检查顺序固定：字段校验 → 查重 → 角色解析 → 创建。
// 并发注册同名用户时，查重可能双双通过，最终由存储层唯一索引兜底。
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Firstname == "" || req.Lastname == "" ||
		req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest,
			"Please provide the username, firstname, lastname, email, and password values")
		return
	}

	email := strings.ToLower(req.Email)

	// 查重：username 或 email 任一重复都算已存在
	existing, err := h.store.FindUserByUsernameOrEmail(r.Context(), req.Username, email)
	if err != nil {
		log.Printf("[user.create] FindUserByUsernameOrEmail error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "The User already exists")
		return
	}

	// 角色解析：未提供时使用默认角色，未知 title 直接失败
	roleTitle := req.Role
	if roleTitle == "" {
		roleTitle = model.DefaultRoleTitle
	}
	role, err := h.store.GetRoleByTitle(r.Context(), roleTitle)
	if err != nil {
		log.Printf("[user.create] GetRoleByTitle error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if role == nil {
		writeError(w, http.StatusBadRequest, "Role not found")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("[user.create] HashPassword error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Name:         model.Name{First: req.Firstname, Last: req.Lastname},
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		RoleTitle:    role.Title,
		LoggedIn:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// 查重和创建之间被并发请求抢先
			writeError(w, http.StatusBadRequest, "The User already exists")
			return
		}
		log.Printf("[user.create] CreateUser error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	log.Printf("[user] User registered: %s (%s)", user.Username, user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// Login 用户登录：校验凭据、置 loggedIn=true、签发令牌
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		log.Printf("[user.login] GetUserByUsername error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "User not found.")
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Authentication failed. Wrong password.")
		return
	}

	if err := h.store.SetUserLoggedIn(r.Context(), user.ID, true); err != nil {
		log.Printf("[user.login] SetUserLoggedIn error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	user.LoggedIn = true

	// 令牌携带登录后的用户快照，24 小时有效
	token, err := auth.IssueToken(h.cfg, user)
	if err != nil {
		log.Printf("[user.login] IssueToken error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[user] User logged in: %s", user.Username)
	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// Logout 登出：置 loggedIn=false
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.store.SetUserLoggedIn(r.Context(), actor.ID, false); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("[user.logout] SetUserLoggedIn error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[user] User logged out: %s", actor.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

// Get 查看用户资料：本人或 admin
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	actor := auth.IdentityFrom(r.Context())
	if !auth.CanViewProfile(actor, id) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		log.Printf("[user.get] GetUserByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update 更新资料：只限本人
//
// firstname/lastname 会映射进嵌套的 name 结构，未提供的字段保持不变。
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	actor := auth.IdentityFrom(r.Context())
	if !auth.CanUpdateProfile(actor, id) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.store.GetUserByID(r.Context(), id)
	if err != nil {
		log.Printf("[user.update] GetUserByID error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Firstname != nil {
		user.Name.First = *req.Firstname
	}
	if req.Lastname != nil {
		user.Name.Last = *req.Lastname
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			writeError(w, http.StatusBadRequest, "The User already exists")
		case errors.Is(err, storage.ErrNotFound):
			writeError(w, http.StatusNotFound, "User not found.")
		default:
			log.Printf("[user.update] UpdateUser error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Delete 删除账户：本人或 admin
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	actor := auth.IdentityFrom(r.Context())
	if !auth.CanDeleteProfile(actor, id) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("[user.delete] DeleteUser error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("[user] User deleted: %s (by %s)", id, actor.ID)
	w.WriteHeader(http.StatusNoContent)
}

// List 列出全部用户：仅 admin，按创建顺序返回
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())
	if !auth.CanListAllUsers(actor) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("[user.list] ListUsers error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Documents 列出指定用户拥有的文档：任何已认证用户可访问
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	actor := auth.IdentityFrom(r.Context())
	if !auth.CanListDocumentsOf(actor, id) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	docs, err := h.store.ListDocumentsByOwner(r.Context(), id)
	if err != nil {
		log.Printf("[user.documents] ListDocumentsByOwner error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// ============================================================================
// 工具函数
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
