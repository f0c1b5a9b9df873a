package document

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docs-admin/internal/apiserver/auth"
	"docs-admin/internal/shared/model"
	"docs-admin/internal/shared/storage/memstore"
)

var (
	owner    = &auth.Identity{ID: "user-a", RoleTitle: model.RoleTitleViewer}
	stranger = &auth.Identity{ID: "user-b", RoleTitle: model.RoleTitleStaff}
	admin    = &auth.Identity{ID: "user-c", RoleTitle: model.RoleTitleAdmin}
)

func doAs(t *testing.T, h *Handler, actor *auth.Identity, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	data, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(data))
	if actor != nil {
		r = r.WithContext(auth.WithIdentity(r.Context(), actor))
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func seedDoc(t *testing.T, store *memstore.Store, id string) *model.Document {
	t.Helper()
	doc := &model.Document{
		ID:          id,
		OwnerID:     owner.ID,
		RoleTitle:   owner.RoleTitle,
		Title:       "Doc1",
		Content:     "1Doc",
		DateCreated: time.Now(),
	}
	if err := store.CreateDocument(t.Context(), doc); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return doc
}

func TestCreateDocument(t *testing.T) {
	store := memstore.NewStore()
	h := NewHandler(store)

	w := doAs(t, h, owner, "POST", "/api/documents", map[string]string{
		"title":   "Doc1",
		"content": "1Doc",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var doc model.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OwnerID != owner.ID {
		t.Errorf("OwnerID = %q, want %q", doc.OwnerID, owner.ID)
	}
	// 所有者角色快照在创建时固定
	if doc.RoleTitle != model.RoleTitleViewer {
		t.Errorf("RoleTitle = %q, want viewer", doc.RoleTitle)
	}
	if doc.DateCreated.IsZero() {
		t.Error("DateCreated should be set")
	}
}

func TestCreateDocumentValidation(t *testing.T) {
	h := NewHandler(memstore.NewStore())

	w := doAs(t, h, owner, "POST", "/api/documents", map[string]string{"title": "Doc1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetDocument(t *testing.T) {
	store := memstore.NewStore()
	h := NewHandler(store)
	seedDoc(t, store, "doc-1")

	w := doAs(t, h, stranger, "GET", "/api/documents/doc-1", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	w = doAs(t, h, stranger, "GET", "/api/documents/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateDocument(t *testing.T) {
	tests := []struct {
		name       string
		actor      *auth.Identity
		wantStatus int
	}{
		{"owner", owner, http.StatusOK},
		{"admin", admin, http.StatusOK},
		{"stranger", stranger, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewStore()
			h := NewHandler(store)
			seedDoc(t, store, "doc-1")

			w := doAs(t, h, tt.actor, "PUT", "/api/documents/doc-1", map[string]string{
				"content": "updated",
			})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			stored, _ := store.GetDocument(t.Context(), "doc-1")
			if tt.wantStatus == http.StatusOK {
				if stored.Content != "updated" {
					t.Errorf("content = %q, want updated", stored.Content)
				}
				if stored.Title != "Doc1" {
					t.Errorf("partial update touched title: %q", stored.Title)
				}
			} else if stored.Content != "1Doc" {
				t.Errorf("denied update changed content: %q", stored.Content)
			}
		})
	}
}

func TestDeleteDocument(t *testing.T) {
	tests := []struct {
		name       string
		actor      *auth.Identity
		wantStatus int
		wantGone   bool
	}{
		{"owner", owner, http.StatusNoContent, true},
		{"admin", admin, http.StatusNoContent, true},
		{"stranger", stranger, http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewStore()
			h := NewHandler(store)
			seedDoc(t, store, "doc-1")

			w := doAs(t, h, tt.actor, "DELETE", "/api/documents/doc-1", nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			stored, _ := store.GetDocument(t.Context(), "doc-1")
			if gone := stored == nil; gone != tt.wantGone {
				t.Errorf("gone = %v, want %v", gone, tt.wantGone)
			}
		})
	}
}

func TestListDocumentsNewestFirst(t *testing.T) {
	store := memstore.NewStore()
	h := NewHandler(store)

	base := time.Now()
	for i, title := range []string{"Doc1", "Doc2", "Doc3"} {
		store.CreateDocument(t.Context(), &model.Document{
			ID:          title,
			OwnerID:     owner.ID,
			Title:       title,
			DateCreated: base.Add(time.Duration(i) * time.Hour),
		})
	}

	w := doAs(t, h, stranger, "GET", "/api/documents", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var docs []model.Document
	if err := json.Unmarshal(w.Body.Bytes(), &docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 3 || docs[0].Title != "Doc3" {
		t.Errorf("docs = %+v, want Doc3 first", docs)
	}
}
