package web

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/qrcard"
	"gymdesk/internal/domain/search"
	"gymdesk/internal/domain/visit"
)

// checkInResponse is the wire shape for a check-in decision.
type checkInResponse struct {
	CanEnter      bool       `json:"canEnter"`
	Status        string     `json:"status"`
	Message       string     `json:"message"`
	Warning       string     `json:"warning,omitempty"`
	DaysRemaining int        `json:"daysRemaining"`
	Member        memberView `json:"member"`
}

// handleCheckIn handles POST /api/checkin — front-desk lookup by
// member number, phone, or name.
func handleCheckIn(w http.ResponseWriter, r *http.Request) {
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

	runCheckIn(w, r, criterion, visit.MethodManual, now)
}

// handleCheckInQR handles POST /api/checkin/qr — raw scanned card text.
func handleCheckInQR(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	var req struct {
		QRData string `json:"qrData"`
	}
	if err := strictDecode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	payload, err := qrcard.Decode(req.QRData)
	if err != nil {
		var decodeErr *qrcard.DecodeError
		if errors.As(err, &decodeErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: decodeErr.Error()})
			return
		}
		internalError(w, err)
		return
	}

	runCheckIn(w, r, search.ByQR{Payload: payload}, visit.MethodQR, now)
}

func runCheckIn(w http.ResponseWriter, r *http.Request, criterion search.Criterion, method string, now time.Time) {
	result, err := orchestrators.ExecuteCheckIn(r.Context(), criterion, method, orchestrators.CheckInDeps{
		Directory:  stores.MemberStore,
		VisitStore: stores.VisitStore,
	}, now)
	if err != nil {
		domainError(w, err, now)
		return
	}

	writeJSON(w, http.StatusOK, checkInResponse{
		CanEnter:      result.Decision.CanEnter,
		Status:        result.Decision.Status,
		Message:       result.Decision.Message,
		Warning:       result.Decision.Warning,
		DaysRemaining: result.Decision.DaysRemaining,
		Member:        toMemberView(result.Member, now),
	})
}

// handleDayPass handles POST /api/daypass — walk-in single-visit sale.
func handleDayPass(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	var input struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		PaymentMethodID int64  `json:"paymentMethodId"`
		Amount          int64  `json:"amount"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	if input.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	result, err := orchestrators.ExecuteDayPass(r.Context(), orchestrators.DayPassInput{
		Name:            input.Name,
		Phone:           input.Phone,
		PaymentMethodID: input.PaymentMethodID,
		Amount:          input.Amount,
	}, orchestrators.DayPassDeps{
		PackageStore: stores.PackageStore,
		Creator:      stores.MemberStore,
		VisitStore:   stores.VisitStore,
	}, now)
	if err != nil {
		domainError(w, err, now)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"memberNumber": result.MemberNumber,
		"packageName":  result.PackageName,
		"message":      result.Message,
	})
}
