package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"medicart/internal/models"
)

// paginated is the standard list envelope.
type paginated struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
	Total int64       `json:"total"`
}

func newPaginated(items interface{}, page, limit int, total int64) paginated {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return paginated{Items: items, Page: page, Pages: pages, Total: total}
}

func (app *application) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		app.errorLog.Println("marshal response:", err)
		http.Error(w, `{"message":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
	app.writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
}

func (app *application) clientError(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, map[string]string{"message": message})
}

// businessError maps the models sentinel errors onto HTTP status codes, per
// the platform's error envelope: 400 validation/business rule, 403 role or
// ownership, 404 stale id, 500 anything unexpected.
func (app *application) businessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrMedicineNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrCouponNotFound),
		errors.Is(err, models.ErrPrescriptionNotFound),
		errors.Is(err, models.ErrTicketNotFound),
		errors.Is(err, models.ErrRequestNotFound):
		app.clientError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAccessDenied):
		app.clientError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrOutOfStock),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrCouponExists),
		errors.Is(err, models.ErrCouponInactive),
		errors.Is(err, models.ErrCouponExpired),
		errors.Is(err, models.ErrCouponNotYetValid),
		errors.Is(err, models.ErrMinimumNotMet),
		errors.Is(err, models.ErrUsageLimitReached),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrCancelNotAllowed),
		errors.Is(err, models.ErrPaymentNotPending),
		errors.Is(err, models.ErrAlreadyDecided),
		errors.Is(err, models.ErrReasonRequired):
		app.clientError(w, http.StatusBadRequest, err.Error())
	default:
		app.serverError(w, err)
	}
}

// failedValidation turns a validator error into a single readable message.
func (app *application) failedValidation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		app.clientError(w, http.StatusBadRequest,
			fmt.Sprintf("field %q failed validation on %q", f.Field(), f.Tag()))
		return
	}
	app.clientError(w, http.StatusBadRequest, err.Error())
}

func (app *application) currentUserID(r *http.Request) (primitive.ObjectID, error) {
	hex := app.session.GetString(r.Context(), "authenticatedUserID")
	return primitive.ObjectIDFromHex(hex)
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(r.URL.Query().Get(":" + name))
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil || n < 1 {
		return fallback
	}
	return n
}
