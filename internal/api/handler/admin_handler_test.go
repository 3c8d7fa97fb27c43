package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

func TestAdminHandler_AddUser_Success(t *testing.T) {
	stub := &stubAuthService{
		enrollFn: func(_ context.Context, username, email, role, password string) (*domain.User, error) {
			if username != "eve" || role != "employee" || password != "pw" {
				t.Fatalf("unexpected args: %s %s %s", username, role, password)
			}
			return &domain.User{ID: "e000001", Username: username, Role: role, CreatedAt: time.Now()}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/admin/addUser", `{"username":"eve","role":"employee","password":"pw"}`)
	if err := h.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAdminHandler_AddUser_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		enrollFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/admin/addUser", `{"username":"eve","role":"employee","password":"pw"}`)
	if err := h.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_AddUser_BadRole(t *testing.T) {
	stub := &stubAuthService{
		enrollFn: func(context.Context, string, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/admin/addUser", `{"username":"eve","role":"superuser","password":"pw"}`)
	if err := h.AddUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	stub := &stubAuthService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "a000001", Username: "alice", Role: "user", PasswordHash: "hash"},
				{ID: "b000001", Username: "bob", Role: "employee", PasswordHash: "hash"},
			}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/admin/listUsers", "")
	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	if resp[0]["id"] != "a000001" || resp[0]["username"] != "alice" || resp[0]["role"] != "user" {
		t.Fatalf("unexpected first entry: %+v", resp[0])
	}
	// The summary never exposes hashes or emails.
	if _, ok := resp[0]["password_hash"]; ok {
		t.Fatalf("password hash leaked in listing")
	}
}

func TestAdminHandler_ListUsers_StoreFailure(t *testing.T) {
	stub := &stubAuthService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/admin/listUsers", "")
	if err := h.ListUsers(c); err == nil {
		t.Fatalf("expected error to propagate to the central handler")
	}
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	deleted := ""
	stub := &stubAuthService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/admin/deleteUser/a000001", "")
	c.SetParamNames("id")
	c.SetParamValues("a000001")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != "a000001" {
		t.Fatalf("deleted wrong id: %q", deleted)
	}
}

func TestAdminHandler_DeleteUser_NotFound(t *testing.T) {
	stub := &stubAuthService{
		deleteFn: func(context.Context, string) error {
			return domain.ErrUserNotFound
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/admin/deleteUser/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
