package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// RegistrationQR renders the registration code as a PNG ticket.
// GET /api/registrations/{id}/qr.png
func (h *Handlers) RegistrationQR(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.Registrations.RetrieveRegistration(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if reg == nil || reg.Code == "" {
		h.respondError(w, http.StatusNotFound, "not_found", "registration not found")
		return
	}

	png, err := qrcode.Encode(reg.Code, qrcode.Medium, 256)
	if err != nil {
		h.log.Error("qr encode failed", "registration_id", id, "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal_error", "failed to generate qr")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
