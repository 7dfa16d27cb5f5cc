package handler

import (
	"net/http"

	"github.com/dukerupert/brochure/internal/domain"
	"github.com/dukerupert/brochure/internal/middleware"
	"github.com/dukerupert/brochure/internal/requestinfo"
)

// requestInfoPage is the data passed to the request_info template.
type requestInfoPage struct {
	Title   string
	Address string
	Status  string
	Error   string
}

// RequestInfoHandler serves the "Request More Information" form.
type RequestInfoHandler struct {
	lookuper Lookuper
	renderer *Renderer
}

// NewRequestInfoHandler creates a new request-info form handler
func NewRequestInfoHandler(lookuper Lookuper, renderer *Renderer) *RequestInfoHandler {
	return &RequestInfoHandler{
		lookuper: lookuper,
		renderer: renderer,
	}
}

// Show handles GET / and GET /request-info.
// An ?address= query parameter presets the address field.
func (h *RequestInfoHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, requestInfoPage{
		Title:   requestinfo.Title,
		Address: r.URL.Query().Get("address"),
	})
}

// Submit handles POST /request-info
func (h *RequestInfoHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const op = "request_info.submit"

	if err := r.ParseForm(); err != nil {
		if isBodyTooLarge(err) {
			ErrorResponse(w, r, domain.Errorf(domain.ETOOLARGE, op, "Request body too large"))
			return
		}
		ErrorResponse(w, r, domain.Invalid(err, op, "Invalid form submission"))
		return
	}

	query := r.PostForm.Get("address")
	page := requestInfoPage{
		Title:   requestinfo.Title,
		Address: query,
	}

	found, err := h.lookuper.Lookup(r.Context(), query)
	if err != nil {
		status := LogError(r, err)
		page.Error = requestinfo.StatusFor(false, err)
		h.render(w, r, status, page)
		return
	}

	middleware.GetLogger(r.Context()).Info("address lookup completed", "found", found)

	page.Status = requestinfo.StatusFor(found, nil)
	h.render(w, r, http.StatusOK, page)
}

func (h *RequestInfoHandler) render(w http.ResponseWriter, r *http.Request, status int, page requestInfoPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, "request_info", page); err != nil {
		// Status is already sent; log only.
		LogError(r, domain.Internal(err, "request_info.render", "failed to render page"))
	}
}
