package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hfappmaker/worktime/internal/api"
	"github.com/hfappmaker/worktime/internal/models"
)

func TestClientCreate_DefaultsOwnerToCaller(t *testing.T) {
	t.Parallel()

	var got *models.Client
	svc := &mockClientService{
		createFn: func(_ context.Context, c *models.Client) (*models.Client, error) {
			got = c
			created := *c
			created.ID = "c1"
			return &created, nil
		},
	}

	r := newTestRouter()
	h := api.NewClientHandler(svc, testLogger())
	r.POST("/clients", h.Create)

	w := doRequest(r, http.MethodPost, "/clients", `{"name":"Acme","contact_name":"Jordan"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got.UserID != testUserID {
		t.Errorf("expected owner defaulted to the caller, got %q", got.UserID)
	}

	var resp models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "c1" {
		t.Errorf("expected created client in response, got %q", resp.ID)
	}
}

func TestClientCreate_MissingNameRejected(t *testing.T) {
	t.Parallel()

	svc := &mockClientService{
		createFn: func(_ context.Context, c *models.Client) (*models.Client, error) {
			t.Error("invalid payload must not reach the service")
			return c, nil
		},
	}

	r := newTestRouter()
	h := api.NewClientHandler(svc, testLogger())
	r.POST("/clients", h.Create)

	w := doRequest(r, http.MethodPost, "/clients", `{"contact_name":"Jordan"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["code"] != "validation_error" {
		t.Errorf("expected validation_error code, got %q", resp["code"])
	}
}

func TestClientCreate_NoPrincipalUnauthorized(t *testing.T) {
	t.Parallel()

	svc := &mockClientService{
		createFn: func(_ context.Context, c *models.Client) (*models.Client, error) {
			t.Error("anonymous request must not reach the service")
			return c, nil
		},
	}

	r := newAnonymousRouter()
	h := api.NewClientHandler(svc, testLogger())
	r.POST("/clients", h.Create)

	w := doRequest(r, http.MethodPost, "/clients", `{"name":"Acme"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestClientGet_GuardErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"ownership denial reads as forbidden", models.ErrUnauthorizedRead, http.StatusForbidden, "forbidden"},
		{"missing record", models.ErrNotFound, http.StatusNotFound, "not_found"},
		{"audit write failure", models.ErrAuditFailed, http.StatusInternalServerError, "audit_failed"},
		{"duplicate key", models.ErrDuplicateKey, http.StatusConflict, "conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockClientService{
				getFn: func(_ context.Context, _ string) (*models.Client, error) {
					return nil, tt.err
				},
			}

			r := newTestRouter()
			h := api.NewClientHandler(svc, testLogger())
			r.GET("/clients/:id", h.Get)

			w := doRequest(r, http.MethodGet, "/clients/c1", "")

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp["code"] != tt.wantBody {
				t.Errorf("expected code %q, got %q", tt.wantBody, resp["code"])
			}
		})
	}
}

func TestClientList_ScopesToCaller(t *testing.T) {
	t.Parallel()

	svc := &mockClientService{
		listFn: func(_ context.Context, userID string) ([]*models.Client, error) {
			if userID != testUserID {
				t.Errorf("expected list scoped to the caller, got %q", userID)
			}
			return []*models.Client{{ID: "c1", Name: "Acme"}}, nil
		},
	}

	r := newTestRouter()
	h := api.NewClientHandler(svc, testLogger())
	r.GET("/clients", h.List)

	w := doRequest(r, http.MethodGet, "/clients", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Clients []*models.Client `json:"clients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Clients) != 1 || resp.Clients[0].ID != "c1" {
		t.Errorf("unexpected list payload: %+v", resp.Clients)
	}
}

func TestClientUpdate_ListScopeErrorMapsToBadRequest(t *testing.T) {
	t.Parallel()

	svc := &mockClientService{
		updateFn: func(_ context.Context, _ string, _ models.ClientPatch) (*models.Client, error) {
			return nil, models.ErrMissingOwnerFilter
		},
	}

	r := newTestRouter()
	h := api.NewClientHandler(svc, testLogger())
	r.PATCH("/clients/:id", h.Update)

	w := doRequest(r, http.MethodPatch, "/clients/c1", `{"name":"Updated"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
