package server

import (
	"net/http"
	"strings"

	"github.com/finadvisor/finadvisor/internal/advisor"
	"github.com/finadvisor/finadvisor/internal/domain"
)

type chatRequest struct {
	Question string `json:"question"`
	Message  string `json:"message"`
}

func (req chatRequest) text() string {
	if q := strings.TrimSpace(req.Question); q != "" {
		return q
	}
	return strings.TrimSpace(req.Message)
}

func (a *API) handleChat(w http.ResponseWriter, r *http.Request) {
	a.ask(w, r, a.advisor)
}

func (a *API) handleStatementChat(w http.ResponseWriter, r *http.Request) {
	a.ask(w, r, a.statements)
}

func (a *API) ask(w http.ResponseWriter, r *http.Request, adv advisor.Advisor) {
	owner, _ := OwnerFrom(r.Context())
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text := req.text()
	if text == "" {
		a.fail(w, r, advisor.ErrEmptyQuestion)
		return
	}

	answer, err := adv.Ask(r.Context(), domain.Question{Owner: owner, Text: text})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, answer)
}
