package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/brochure/internal/address"
	"github.com/dukerupert/brochure/internal/domain"
	"github.com/dukerupert/brochure/internal/requestinfo"
)

// LookupResponse is the body of GET /api/lookup.
type LookupResponse struct {
	Query  string `json:"query"`
	Found  bool   `json:"found"`
	Status string `json:"status"`
}

// ValidateRequest is the body of POST /api/address/validate.
type ValidateRequest struct {
	Address string `json:"address" validate:"required,max=256"`
}

// ValidateResponse is returned for an address with an accepted shape.
type ValidateResponse struct {
	Valid   bool            `json:"valid"`
	Form    string          `json:"form"`
	Address address.Address `json:"address"`
}

// APIHandler serves the JSON lookup endpoints.
type APIHandler struct {
	lookuper Lookuper
	validate *validator.Validate
}

// NewAPIHandler creates a new JSON API handler
func NewAPIHandler(lookuper Lookuper) *APIHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &APIHandler{
		lookuper: lookuper,
		validate: v,
	}
}

// Lookup handles GET /api/lookup?q=
func (h *APIHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	found, err := h.lookuper.Lookup(r.Context(), query)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LookupResponse{
		Query:  query,
		Found:  found,
		Status: requestinfo.StatusFor(found, nil),
	})
}

// ValidateAddress handles POST /api/address/validate.
// It checks the address shape only and never contacts the geocoder.
func (h *APIHandler) ValidateAddress(w http.ResponseWriter, r *http.Request) {
	const op = "api.validate_address"

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			ErrorResponse(w, r, domain.Errorf(domain.ETOOLARGE, op, "Request body too large"))
			return
		}
		ErrorResponse(w, r, domain.Invalid(err, op, "Invalid JSON body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		ErrorResponse(w, r, toValidationError(op, err))
		return
	}

	addr, err := h.lookuper.ParseAddress(req.Address)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:   true,
		Form:    addr.Form.String(),
		Address: addr,
	})
}

// NotFound answers every request no other route matched.
func NotFound(w http.ResponseWriter, r *http.Request) {
	ErrorResponse(w, r, domain.NotFound("route.match", "page", r.URL.Path))
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toValidationError(op string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.Invalid(err, op, "Invalid request")
	}

	out := domain.NewValidationError(op, fieldErrs[0].Field(), fieldMessage(fieldErrs[0]))
	for _, fe := range fieldErrs[1:] {
		out = domain.AddFieldError(out, fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
