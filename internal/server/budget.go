package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/finadvisor/finadvisor/internal/budget"
	"github.com/finadvisor/finadvisor/internal/domain"
	money "github.com/finadvisor/finadvisor/pkg/decimal"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Limit          field  `json:"limit"`
	DurationMonths field  `json:"durationMonths"`
}

type spendRequest struct {
	Amount field `json:"amount"`
}

type categoriesResponse struct {
	Categories []domain.BudgetCategory `json:"categories"`
}

// parseLimit is strict: budget limits are rejected rather than coerced.
func parseLimit(f field) (decimal.Decimal, error) {
	s := strings.TrimSpace(f.String())
	if s == "" {
		return decimal.Zero, nil
	}
	m, err := money.NewMoneyFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", budget.ErrInvalidLimit, s)
	}
	return m.Decimal, nil
}

func parseDuration(f field) (int, error) {
	s := strings.TrimSpace(f.String())
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", budget.ErrInvalidDuration, s)
	}
	return n, nil
}

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	cats, err := a.budgets.Categories(r.Context(), owner)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categoriesResponse{Categories: cats})
}

func (a *API) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(req.Limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	months, err := parseDuration(req.DurationMonths)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	cat, err := a.budgets.Add(r.Context(), owner, budget.AddRequest{
		Name:           req.Name,
		Icon:           req.Icon,
		Limit:          limit,
		DurationMonths: months,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (a *API) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimit(req.Limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	months, err := parseDuration(req.DurationMonths)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	cat, err := a.budgets.Update(r.Context(), owner, r.PathValue("key"), budget.UpdateRequest{
		Limit:          limit,
		DurationMonths: months,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (a *API) handleRecordSpend(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	var req spendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	delta, err := money.NewMoneyFromString(strings.TrimSpace(req.Amount.String()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a number")
		return
	}

	cat, err := a.budgets.RecordSpend(r.Context(), owner, r.PathValue("key"), delta.Decimal)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cat)
}

func (a *API) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	if err := a.budgets.Delete(r.Context(), owner, r.PathValue("key")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	owner, _ := OwnerFrom(r.Context())
	summary, err := a.budgets.Summary(r.Context(), owner)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
