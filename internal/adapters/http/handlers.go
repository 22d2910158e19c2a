package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/renewal"
	"gymdesk/internal/domain/search"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts member notes to sanitized HTML for the card view.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// memberView is the JSON representation of a member, with the derived
// status fields the console shows.
type memberView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MembershipType string `json:"membershipType"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
	DaysRemaining  int    `json:"daysRemaining"`
	CreatedAt      string `json:"createdAt"`
}

func toMemberView(m member.Member, now time.Time) memberView {
	return memberView{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		Email:          m.Email,
		MembershipType: m.MembershipType,
		StartDate:      m.StartDate.Format("2006-01-02"),
		EndDate:        m.EndDate.Format("2006-01-02"),
		Notes:          m.Notes,
		Status:         m.Status(now),
		DaysRemaining:  m.DaysRemaining(now),
		CreatedAt:      m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMemberViews(members []member.Member, now time.Time) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, toMemberView(m, now))
	}
	return views
}

// duplicateMembersResponse is the wire shape for an ambiguous lookup:
// HTTP 300 Multiple Choices with the full candidate set, so the desk
// can ask the human which member was meant.
type duplicateMembersResponse struct {
	Error            string       `json:"error"`
	DuplicateMembers []memberView `json:"duplicateMembers"`
}

// domainError maps domain and orchestration errors to HTTP responses.
func domainError(w http.ResponseWriter, err error, now time.Time) {
	var ambiguous *search.AmbiguousMatchError
	if errors.As(err, &ambiguous) {
		writeJSON(w, http.StatusMultipleChoices, duplicateMembersResponse{
			Error:            ambiguous.Error(),
			DuplicateMembers: toMemberViews(ambiguous.Candidates, now),
		})
		return
	}

	switch {
	case errors.Is(err, search.ErrNoMatch),
		errors.Is(err, orchestrators.ErrMemberNotFound),
		errors.Is(err, orchestrators.ErrPackageNotFound),
		errors.Is(err, orchestrators.ErrNoDayPassPackage):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, search.ErrNoCriterion),
		errors.Is(err, renewal.ErrDayPassRenewal),
		errors.Is(err, renewal.ErrNegativeDuration):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, orchestrators.ErrPackageUnavailable):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		internalError(w, err)
	}
}

// pathID parses the {id} path segment as a member/package number.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// handleLogin handles POST /api/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.LoginInput
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			status = http.StatusLocked
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"email": result.Email,
		"role":  result.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.SessionTokenFromRequest(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
