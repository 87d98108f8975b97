package http

import (
	"net/http"

	"github.com/MKhiriev/go-image-gateway/internal/app"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
	"github.com/MKhiriev/go-image-gateway/models"
)

// health reports liveness and the startup state of the upscaler model.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:  app.StatusRunning,
		AIModel: h.services.ImageService.UpscalerState().String(),
	}, http.StatusOK)
}

// limits reports today's usage of the charged bucket without charging.
func (h *Handler) limits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoPrincipal, app.MsgInternalServerError)
		return
	}

	usage, err := h.services.QuotaService.Usage(ctx, principal.UserID, h.quota.Bucket, h.quota.Ceiling)
	if err != nil {
		h.writeError(w, r, err, app.MsgInternalServerError)
		return
	}

	utils.WriteJSON(w, usage, http.StatusOK)
}
