package help

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sessioncontext "monterhyra/frontend/shared/context"
	"monterhyra/models"
)

func TestHelpPageByRole(t *testing.T) {
	render := func(role string) string {
		req := httptest.NewRequest(http.MethodGet, "/admin/help", nil)
		session := models.Session{User: models.User{Username: "u", Role: role}}
		req = req.WithContext(sessioncontext.NewContextWithSession(req.Context(), session))
		rec := httptest.NewRecorder()
		HelpPageQueryHandler()(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		return rec.Body.String()
	}

	if body := render("warehouse"); strings.Contains(body, "Administration") || !strings.Contains(body, "lagerpersonal") {
		t.Fatalf("unexpected warehouse help")
	}
	if body := render("admin"); !strings.Contains(body, "Administration") {
		t.Fatalf("expected admin section")
	}
}

func TestHelpRequiresSession(t *testing.T) {
	rec := httptest.NewRecorder()
	HelpPageQueryHandler()(rec, httptest.NewRequest(http.MethodGet, "/admin/help", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}
