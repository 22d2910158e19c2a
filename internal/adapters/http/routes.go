package web

import (
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/domain/account"
)

// registerRoutes wires the JSON API. The desk endpoints (check-in,
// search, day pass, renewals) are open to any logged-in account;
// catalog and account management require admin.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	adminOnly := middleware.RequireRole(account.RoleAdmin)
	admin := func(h http.HandlerFunc) http.Handler {
		return adminOnly(h)
	}

	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)

	mux.Handle("GET /api/members", authed(handleMembers))
	mux.Handle("POST /api/members", authed(handleMembers))
	mux.Handle("GET /api/members/{id}", authed(handleMemberByID))
	mux.Handle("PUT /api/members/{id}", authed(handleMemberByID))
	mux.Handle("DELETE /api/members/{id}", admin(handleMemberByID))
	mux.Handle("POST /api/members/search", authed(handleMemberSearch))

	mux.Handle("POST /api/checkin", authed(handleCheckIn))
	mux.Handle("POST /api/checkin/qr", authed(handleCheckInQR))
	mux.Handle("POST /api/daypass", authed(handleDayPass))

	mux.Handle("GET /api/members/{id}/renew/preview", authed(handleRenewPreview))
	mux.Handle("POST /api/members/{id}/renew", authed(handleRenewMember))

	mux.Handle("GET /api/members/{id}/qr", authed(handleMemberQR))
	mux.Handle("GET /api/members/{id}/qr.png", authed(handleMemberQRImage))
	mux.Handle("GET /api/members/{id}/card", authed(handleMemberCard))

	mux.Handle("GET /api/packages", authed(handlePackages))
	mux.Handle("POST /api/packages", admin(handlePackages))
	mux.Handle("PUT /api/packages/{id}", admin(handlePackageByID))
	mux.Handle("DELETE /api/packages/{id}", admin(handlePackageByID))

	mux.Handle("GET /api/payment-methods", authed(handlePaymentMethods))
	mux.Handle("POST /api/payment-methods", admin(handlePaymentMethods))

	mux.Handle("GET /api/members/{id}/history", authed(handleMemberHistory))
	mux.Handle("GET /api/reports/transactions", admin(handleTransactionsReport))
	mux.Handle("GET /api/reports/checkins", authed(handleCheckInLog))

	mux.Handle("GET /api/accounts", admin(handleAccounts))
	mux.Handle("POST /api/accounts", admin(handleAccounts))
	mux.Handle("DELETE /api/accounts/{id}", admin(handleAccountByID))

	mux.Handle("GET /api/dashboard/stats", authed(handleDashboardStats))
	mux.Handle("POST /api/reminders/expiry", admin(handleExpiryReminders))
}
