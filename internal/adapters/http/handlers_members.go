package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	memberStore "gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/qrcard"
	"gymdesk/internal/domain/renewal"
	"gymdesk/internal/domain/search"
)

// handleMembers handles GET (list) and POST (register) on /api/members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := timeNow()

	if r.Method == "GET" {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		offset, _ := strconv.Atoi(q.Get("offset"))
		filter := memberStore.ListFilter{
			Search: q.Get("search"),
			Sort:   q.Get("sort"),
			Dir:    q.Get("dir"),
			Limit:  limit,
			Offset: offset,
		}

		members, err := stores.MemberStore.List(ctx, filter)
		if err != nil {
			internalError(w, err)
			return
		}
		total, err := stores.MemberStore.Count(ctx, filter)
		if err != nil {
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"members": toMemberViews(members, now),
			"total":   total,
		})
		return
	}

	// POST: register a member with their package purchase
	var input struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Email           string `json:"email"`
		Notes           string `json:"notes"`
		PackageID       int64  `json:"packageId"`
		PaymentMethodID int64  `json:"paymentMethodId"`
		Amount          int64  `json:"amount"`
		StartDate       string `json:"startDate"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	regInput := orchestrators.RegisterMemberInput{
		Name:            input.Name,
		Phone:           input.Phone,
		Email:           input.Email,
		Notes:           input.Notes,
		PackageID:       input.PackageID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
	}
	if input.StartDate != "" {
		start, err := datemath.ParseDate(input.StartDate)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "startDate must be YYYY-MM-DD"})
			return
		}
		regInput.StartDate = start
	}

	number, err := orchestrators.ExecuteRegisterMember(ctx, regInput, orchestrators.RegisterMemberDeps{
		PackageStore: stores.PackageStore,
		Creator:      stores.MemberStore,
	}, now)
	if err != nil {
		domainError(w, err, now)
		return
	}

	m, err := stores.MemberStore.GetByNumber(ctx, number)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberView(m, now))
}

// handleMemberByID handles GET, PUT, DELETE on /api/members/{id}.
func handleMemberByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}

	m, err := stores.MemberStore.GetByNumber(ctx, number)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}

	switch r.Method {
	case "GET":
		writeJSON(w, http.StatusOK, toMemberView(m, now))

	case "PUT":
		var input struct {
			Name      string `json:"name"`
			Phone     string `json:"phone"`
			Email     string `json:"email"`
			Notes     string `json:"notes"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		}
		if err := strictDecode(r, &input); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
			return
		}
		if input.Name != "" {
			m.Name = input.Name
		}
		m.Phone = input.Phone
		m.Email = input.Email
		m.Notes = input.Notes
		if input.StartDate != "" {
			start, err := datemath.ParseDate(input.StartDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "startDate must be YYYY-MM-DD"})
				return
			}
			m.StartDate = start
		}
		if input.EndDate != "" {
			end, err := datemath.ParseDate(input.EndDate)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "endDate must be YYYY-MM-DD"})
				return
			}
			m.EndDate = end
		}
		if err := m.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := stores.MemberStore.Save(ctx, m); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toMemberView(m, now))

	case "DELETE":
		if err := stores.MemberStore.Delete(ctx, number); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// searchRequest carries the optional identifying fields of a lookup.
// The original console sends exactly one of these.
type searchRequest struct {
	MemberNumber int64  `json:"memberNumber"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
}

// handleMemberSearch handles POST /api/members/search.
// Unlike check-in, search returns the candidate list directly — the
// desk picks from it, so ambiguity is not an error here.
func handleMemberSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := timeNow()

	var req searchRequest
	if err := strictDecode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	criterion, err := search.FromFields(req.MemberNumber, req.Phone, req.Name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	m, err := orchestrators.ExecuteResolveMember(ctx, criterion, orchestrators.ResolveMemberDeps{
		Directory: stores.MemberStore,
	})
	if err != nil {
		var ambiguous *search.AmbiguousMatchError
		if errors.As(err, &ambiguous) {
			writeJSON(w, http.StatusOK, map[string]any{
				"members": toMemberViews(ambiguous.Candidates, now),
			})
			return
		}
		if errors.Is(err, search.ErrNoMatch) {
			writeJSON(w, http.StatusOK, map[string]any{"members": []memberView{}})
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"members": []memberView{toMemberView(m, now)},
	})
}

// handleRenewPreview handles GET /api/members/{id}/renew/preview.
func handleRenewPreview(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}
	packageID, err := strconv.ParseInt(r.URL.Query().Get("packageId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "packageId is required"})
		return
	}

	preview, err := orchestrators.ExecutePreviewRenewal(r.Context(), number, packageID, renewDeps(), now)
	if err != nil {
		domainError(w, err, now)
		return
	}
	writeJSON(w, http.StatusOK, previewView(preview))
}

// handleRenewMember handles POST /api/members/{id}/renew.
func handleRenewMember(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}

	var input struct {
		PackageID       int64  `json:"packageId"`
		PaymentMethodID int64  `json:"paymentMethodId"`
		Amount          int64  `json:"amount"`
		Notes           string `json:"notes"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	result, err := orchestrators.ExecuteRenewMembership(r.Context(), orchestrators.RenewMembershipInput{
		MemberNumber:    number,
		PackageID:       input.PackageID,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
		Notes:           input.Notes,
	}, renewDeps(), now)
	if err != nil {
		domainError(w, err, now)
		return
	}

	view := previewView(result.Preview)
	view["transactionId"] = result.TransactionID
	writeJSON(w, http.StatusOK, view)
}

func renewDeps() orchestrators.RenewMembershipDeps {
	return orchestrators.RenewMembershipDeps{
		MemberStore:  stores.MemberStore,
		PackageStore: stores.PackageStore,
		Committer:    stores.MemberStore,
	}
}

func previewView(p renewal.Preview) map[string]any {
	return map[string]any{
		"packageName":    p.PackageName,
		"durationMonths": p.DurationMonths,
		"currentEndDate": p.CurrentEndDate.Format("2006-01-02"),
		"newStartDate":   p.NewStartDate.Format("2006-01-02"),
		"newEndDate":     p.NewEndDate.Format("2006-01-02"),
		"extensionDays":  p.ExtensionDays,
		"isExpired":      p.IsExpired,
	}
}

// handleMemberQR handles GET /api/members/{id}/qr — the payload JSON.
func handleMemberQR(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}

	m, err := stores.MemberStore.GetByNumber(r.Context(), number)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}
	writeJSON(w, http.StatusOK, qrcard.Encode(m, now))
}

// handleMemberQRImage handles GET /api/members/{id}/qr.png.
func handleMemberQRImage(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	result, err := orchestrators.ExecuteIssueQRCard(r.Context(), number, size, orchestrators.IssueQRCardDeps{
		MemberStore: stores.MemberStore,
		Images:      qrEncoder,
	}, now)
	if err != nil {
		domainError(w, err, now)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.Write(result.PNG)
}

// cardTemplate renders the printable member card. Notes come through
// renderMarkdown, so raw HTML in notes is escaped.
var cardTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Member Card — {{.Name}}</title>
<style>
.card { width: 340px; border: 1px solid #333; border-radius: 8px; padding: 16px; font-family: sans-serif; }
.card h1 { font-size: 1.2em; margin: 0 0 4px; }
.card .number { color: #666; font-size: 0.9em; }
.card img { display: block; margin: 12px auto; }
.card .notes { font-size: 0.85em; border-top: 1px dashed #999; padding-top: 8px; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<div class="card">
<h1>{{.Name}}</h1>
<div class="number">Member #{{.ID}} — {{.MembershipType}}</div>
<img src="/api/members/{{.ID}}/qr.png" width="256" height="256" alt="QR code">
<div>Valid until {{.EndDate}}</div>
{{if .NotesHTML}}<div class="notes">{{.NotesHTML}}</div>{{end}}
</div>
</body>
</html>
`))

// handleMemberCard handles GET /api/members/{id}/card.
func handleMemberCard(w http.ResponseWriter, r *http.Request) {
	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}

	m, err := stores.MemberStore.GetByNumber(r.Context(), number)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}

	data := map[string]any{
		"ID":             m.ID,
		"Name":           m.Name,
		"MembershipType": m.MembershipType,
		"EndDate":        m.EndDate.Format("2006-01-02"),
		"NotesHTML":      template.HTML(""),
	}
	if m.Notes != "" {
		data["NotesHTML"] = renderMarkdown(m.Notes)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardTemplate.Execute(w, data); err != nil {
		slog.Error("card_render_failed", "member_id", m.ID, "error", err)
	}
}
