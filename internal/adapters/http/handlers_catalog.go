package web

import (
	"net/http"

	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/catalog"
	"gymdesk/internal/domain/paymentmethod"
)

type packageView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	DurationMonths int    `json:"durationMonths"`
	Price          int64  `json:"price"`
	Active         bool   `json:"active"`
	IsDayPass      bool   `json:"isDayPass"`
}

func toPackageView(p catalog.Package) packageView {
	return packageView{
		ID:             p.ID,
		Name:           p.Name,
		DurationMonths: p.DurationMonths,
		Price:          p.Price,
		Active:         p.Active,
		IsDayPass:      p.IsDayPass(),
	}
}

// handlePackages handles GET (list) and POST (create) on /api/packages.
func handlePackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		includeInactive := r.URL.Query().Get("includeInactive") == "true"
		packages, err := stores.PackageStore.List(ctx, includeInactive)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]packageView, 0, len(packages))
		for _, p := range packages {
			views = append(views, toPackageView(p))
		}
		writeJSON(w, http.StatusOK, map[string]any{"packages": views})
		return
	}

	var input struct {
		Name           string `json:"name"`
		DurationMonths int    `json:"durationMonths"`
		Price          int64  `json:"price"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	pkg := catalog.Package{
		Name:           input.Name,
		DurationMonths: input.DurationMonths,
		Price:          input.Price,
		Active:         true,
	}
	if err := pkg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := stores.PackageStore.Save(ctx, pkg); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handlePackageByID handles PUT and DELETE on /api/packages/{id}.
func handlePackageByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := timeNow()

	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid package id"})
		return
	}

	if r.Method == "DELETE" {
		result, err := orchestrators.ExecuteDeletePackage(ctx, id, orchestrators.DeletePackageDeps{
			PackageStore:     stores.PackageStore,
			TransactionStore: stores.TransactionStore,
		})
		if err != nil {
			domainError(w, err, now)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deactivated": result.Deactivated})
		return
	}

	// PUT
	pkg, err := stores.PackageStore.GetByID(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "package not found"})
		return
	}

	var input struct {
		Name           string `json:"name"`
		DurationMonths *int   `json:"durationMonths"`
		Price          *int64 `json:"price"`
		Active         *bool  `json:"active"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	if input.Name != "" {
		pkg.Name = input.Name
	}
	if input.DurationMonths != nil {
		pkg.DurationMonths = *input.DurationMonths
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.Active != nil {
		pkg.Active = *input.Active
	}
	if err := pkg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := stores.PackageStore.Save(ctx, pkg); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPackageView(pkg))
}

// handlePaymentMethods handles GET (list) and POST (create) on /api/payment-methods.
func handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		methods, err := stores.PaymentMethodStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"paymentMethods": methods})
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	method := paymentmethod.PaymentMethod{Name: input.Name, Active: true}
	if err := method.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := stores.PaymentMethodStore.Save(ctx, method); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleDashboardStats handles GET /api/dashboard/stats.
func handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		MemberStore:      stores.MemberStore,
		VisitStore:       stores.VisitStore,
		TransactionStore: stores.TransactionStore,
	}, now)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalMembers":    result.TotalMembers,
		"active":          result.Active,
		"expiringSoon":    result.ExpiringSoon,
		"expired":         result.Expired,
		"inactive":        result.Inactive,
		"todayCheckIns":   result.TodayCheckIns,
		"monthRevenue":    result.MonthRevenue,
		"expiringMembers": toMemberViews(result.ExpiringMembers, now),
	})
}

// handleExpiryReminders handles POST /api/reminders/expiry.
func handleExpiryReminders(w http.ResponseWriter, r *http.Request) {
	now := timeNow()

	if emailSender == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "email sender is not configured"})
		return
	}

	result, err := orchestrators.ExecuteExpiryReminders(r.Context(), orchestrators.ExpiryRemindersInput{
		From:    emailFromAddress,
		ReplyTo: emailReplyTo,
	}, orchestrators.ExpiryRemindersDeps{
		MemberStore: stores.MemberStore,
		Sender:      emailSender,
	}, now)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"considered": result.Considered,
		"sent":       result.Sent,
	})
}
