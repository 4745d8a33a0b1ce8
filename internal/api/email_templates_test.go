package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hfappmaker/worktime/internal/api"
	"github.com/hfappmaker/worktime/internal/service"
)

func TestEmailTemplateRender_ReturnsRenderedEmail(t *testing.T) {
	t.Parallel()

	svc := &mockTemplateService{
		renderFn: func(_ context.Context, templateID, contractID string) (*service.RenderedEmail, error) {
			if templateID != "t1" || contractID != "ct1" {
				t.Errorf("unexpected render target: %s %s", templateID, contractID)
			}
			return &service.RenderedEmail{Subject: "Invoice for Backend Retainer", Body: "Dear Jordan,"}, nil
		},
	}

	r := newTestRouter()
	h := api.NewEmailTemplateHandler(svc, testLogger())
	r.POST("/email-templates/:id/render", h.Render)

	w := doRequest(r, http.MethodPost, "/email-templates/t1/render", `{"contract_id":"ct1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp service.RenderedEmail
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Subject != "Invoice for Backend Retainer" {
		t.Errorf("unexpected subject: %q", resp.Subject)
	}
}

func TestEmailTemplateRender_MissingContractRejected(t *testing.T) {
	t.Parallel()

	svc := &mockTemplateService{
		renderFn: func(_ context.Context, _, _ string) (*service.RenderedEmail, error) {
			t.Error("missing contract_id must not reach the service")
			return nil, nil
		},
	}

	r := newTestRouter()
	h := api.NewEmailTemplateHandler(svc, testLogger())
	r.POST("/email-templates/:id/render", h.Render)

	w := doRequest(r, http.MethodPost, "/email-templates/t1/render", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
