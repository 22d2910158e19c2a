package web

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/account"
)

// accountView is the JSON representation of a console account. The
// password hash never leaves the server.
type accountView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toAccountView(a account.Account) accountView {
	return accountView{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// handleAccounts handles GET (list) and POST (create) on /api/accounts.
func handleAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method == "GET" {
		accounts, err := stores.AccountStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]accountView, 0, len(accounts))
		for _, a := range accounts {
			views = append(views, toAccountView(a))
		}
		writeJSON(w, http.StatusOK, map[string]any{"accounts": views})
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := strictDecode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}

	id, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	}, orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	a, err := stores.AccountStore.GetByID(ctx, id)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountView(a))
}

// handleAccountByID handles DELETE on /api/accounts/{id}. Deleting the
// account behind the current session is refused so an admin cannot
// lock themselves out.
func handleAccountByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if sess, ok := middleware.GetSessionFromContext(ctx); ok && sess.AccountID == id {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cannot delete your own account"})
		return
	}

	if _, err := stores.AccountStore.GetByID(ctx, id); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "account not found"})
		return
	}
	if err := stores.AccountStore.Delete(ctx, id); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
