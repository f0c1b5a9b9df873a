// Package document 文档 API：创建、读取、更新、删除
//
// 创建时把所有者当前角色 title 做快照存入文档，之后不再重新解析。
// 修改/删除仅限所有者或 admin。
package document

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage"

	"github.com/google/uuid"
)

// Store 文档存储接口
type Store interface {
	CreateDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	UpdateDocument(ctx context.Context, doc *model.Document) error
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context) ([]*model.Document, error)
}

// Handler 文档 HTTP 处理器
type Handler struct {
	store Store
}

// NewHandler 创建文档处理器
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册文档相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/documents", h.Create)
	mux.HandleFunc("GET /api/documents", h.List)
	mux.HandleFunc("GET /api/documents/{id}", h.Get)
	mux.HandleFunc("PUT /api/documents/{id}", h.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Delete)
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create 创建文档，所有者为当前请求者
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())
	if actor == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Please provide the title and content values")
		return
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		OwnerID:     actor.ID,
		RoleTitle:   actor.RoleTitle, // 所有者角色快照
		Title:       req.Title,
		Content:     req.Content,
		DateCreated: time.Now(),
	}
	if err := h.store.CreateDocument(r.Context(), doc); err != nil {
		log.Printf("[document.create] CreateDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create document")
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// List 列出全部文档，最新的在前
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.ListDocuments(r.Context())
	if err != nil {
		log.Printf("[document.list] ListDocuments error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Get 读取单个文档
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("[document.get] GetDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found.")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Update 更新文档：所有者或 admin
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())

	doc, err := h.store.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("[document.update] GetDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found.")
		return
	}
	if !auth.CanModifyDocument(actor, doc) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}

	if err := h.store.UpdateDocument(r.Context(), doc); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found.")
			return
		}
		log.Printf("[document.update] UpdateDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Delete 删除文档：所有者或 admin
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.IdentityFrom(r.Context())

	doc, err := h.store.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Printf("[document.delete] GetDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found.")
		return
	}
	if !auth.CanModifyDocument(actor, doc) {
		writeError(w, http.StatusForbidden, "Unauthorized Access")
		return
	}

	if err := h.store.DeleteDocument(r.Context(), doc.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Document not found.")
			return
		}
		log.Printf("[document.delete] DeleteDocument error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
