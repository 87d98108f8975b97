package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-image-gateway/internal/app"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

const (
	uploadField = "file"

	// multipartMemory is the part of a multipart body kept in memory;
	// the remainder spills to temporary files.
	multipartMemory = 8 << 20
)

func (h *Handler) removeBackground(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoPrincipal, app.MsgBackgroundRemovalFailed)
		return
	}

	file, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err, app.MsgBackgroundRemovalFailed)
		return
	}

	out, err := h.services.ImageService.RemoveBackground(ctx, principal, file)
	if err != nil {
		h.writeError(w, r, err, app.MsgBackgroundRemovalFailed)
		return
	}

	utils.WritePNG(w, out)
}

func (h *Handler) upscale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		h.writeError(w, r, ErrNoPrincipal, app.MsgUpscaleFailed)
		return
	}

	file, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, r, err, app.MsgUpscaleFailed)
		return
	}

	out, err := h.services.ImageService.Upscale(ctx, principal, file)
	if err != nil {
		h.writeError(w, r, err, app.MsgUpscaleFailed)
		return
	}

	utils.WritePNG(w, out)
}

// readUpload returns the bytes of the "file" multipart field. The body is
// capped at the configured upload limit.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.server.MaxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, uploadError(err)
	}
	defer r.MultipartForm.RemoveAll()

	part, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, uploadError(err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, uploadError(err)
	}
	if len(data) == 0 {
		return nil, ErrFileRequired
	}

	return data, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, tooLarge.Limit)
	}

	return fmt.Errorf("%w: %w", ErrFileRequired, err)
}

// writeError maps err to its status code and {"detail"} body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, processingDetail string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteDetail(w, detailFromError(err, processingDetail), status)
}
