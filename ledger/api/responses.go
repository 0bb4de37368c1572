package api

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidBody = errors.New("invalid JSON body")

const (
	codeBadRequest     = "BadRequest"
	codeNotFound       = "NotFound"
	codeOutcomeUnknown = "OutcomeUnknown"
	codeInternal       = "Internal"
)

type envelope struct {
	Success    bool         `json:"success"`
	Failure    *failureView `json:"failure,omitempty"`
	Idempotent bool         `json:"idempotent,omitempty"`
	Data       any          `json:"data,omitempty"`
}

type failureView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeCommand answers a command result, a business failure answers 422 and carries data as well.
func writeCommand(w http.ResponseWriter, status int, execution shell.HandlerResult, failure *core.Failure, data any) {
	if failure != nil {
		writeJSON(w, http.StatusUnprocessableEntity, envelope{
			Failure: &failureView{Code: failure.Code, Message: failure.Message},
			Data:    data,
		})

		return
	}

	if execution.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, envelope{Success: true, Idempotent: execution.Idempotent, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	writeJSON(w, status, envelope{Failure: &failureView{Code: code, Message: err.Error()}})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, errInvalidParameter),
		errors.Is(err, core.ErrMissingIdentifier),
		errors.Is(err, core.ErrInvalidLeaguePeriod):
		return http.StatusBadRequest, codeBadRequest

	case errors.Is(err, core.ErrAccountNotFound),
		errors.Is(err, core.ErrSquadNotFound),
		errors.Is(err, core.ErrRedemptionNotFound):
		return http.StatusNotFound, codeNotFound

	case errors.Is(err, shell.ErrOutcomeUnknown):
		return http.StatusServiceUnavailable, codeOutcomeUnknown

	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil && !errors.Is(err, io.EOF) {
		return errInvalidBody
	}

	return nil
}
