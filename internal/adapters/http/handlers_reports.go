package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/datemath"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/domain/transaction"
	"gymdesk/internal/domain/visit"
)

// transactionView is the JSON representation of a payment record.
type transactionView struct {
	ID              string `json:"id"`
	MemberID        int64  `json:"memberId"`
	PackageID       int64  `json:"packageId"`
	PaymentMethodID int64  `json:"paymentMethodId"`
	Amount          int64  `json:"amount"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"createdAt"`
}

func toTransactionViews(txns []transaction.Transaction) []transactionView {
	views := make([]transactionView, 0, len(txns))
	for _, txn := range txns {
		views = append(views, transactionView{
			ID:              txn.ID,
			MemberID:        txn.MemberID,
			PackageID:       txn.PackageID,
			PaymentMethodID: txn.PaymentMethodID,
			Amount:          txn.Amount,
			Notes:           txn.Notes,
			CreatedAt:       txn.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return views
}

// visitView is the JSON representation of a check-in record.
type visitView struct {
	ID          string `json:"id"`
	MemberID    int64  `json:"memberId"`
	Method      string `json:"method"`
	CheckInTime string `json:"checkInTime"`
}

func toVisitViews(visits []visit.Visit) []visitView {
	views := make([]visitView, 0, len(visits))
	for _, v := range visits {
		views = append(views, visitView{
			ID:          v.ID,
			MemberID:    v.MemberID,
			Method:      v.Method,
			CheckInTime: v.CheckInTime.UTC().Format(time.RFC3339),
		})
	}
	return views
}

// handleMemberHistory handles GET /api/members/{id}/history.
func handleMemberHistory(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	number, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member number"})
		return
	}

	res, err := projections.QueryGetMemberHistory(r.Context(), projections.GetMemberHistoryDeps{
		MemberStore:      stores.MemberStore,
		TransactionStore: stores.TransactionStore,
		VisitStore:       stores.VisitStore,
	}, number)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"member":       toMemberView(res.Member, now),
		"transactions": toTransactionViews(res.Transactions),
		"visits":       toVisitViews(res.Visits),
	})
}

// handleTransactionsReport handles GET /api/reports/transactions.
func handleTransactionsReport(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	res, err := projections.QueryGetFinancialReport(r.Context(), projections.GetFinancialReportDeps{
		TransactionStore: stores.TransactionStore,
	}, limit, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": toTransactionViews(res.Transactions),
		"todayRevenue": res.TodayRevenue,
		"monthRevenue": res.MonthRevenue,
	})
}

// handleCheckInLog handles GET /api/reports/checkins. Without ?since=
// the window is today, matching the desk's end-of-day view.
func handleCheckInLog(w http.ResponseWriter, r *http.Request) {
	since := datemath.Truncate(timeNow())
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := datemath.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "since must be YYYY-MM-DD"})
			return
		}
		since = parsed
	}

	res, err := projections.QueryGetCheckInLog(r.Context(), projections.GetCheckInLogDeps{
		VisitStore: stores.VisitStore,
	}, since)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"visits":   toVisitViews(res.Visits),
		"byMethod": res.ByMethod,
	})
}
