package http

import (
	"QRTrack-Backend/internal/auth"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/internal/service"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AnalyticsHandler serves aggregated scan analytics to code owners.
type AnalyticsHandler struct {
	storage    repository.Storage
	aggregator *service.Aggregator
	log        *zap.Logger
}

func NewAnalyticsHandler(storage repository.Storage, aggregator *service.Aggregator, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		storage:    storage,
		aggregator: aggregator,
		log:        log,
	}
}

// AnalyticsQRCode is the code header attached to a summary.
type AnalyticsQRCode struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	TotalScans int64     `json:"totalScans"`
}

// AnalyticsResponse is the full analytics payload.
type AnalyticsResponse struct {
	QRCode    AnalyticsQRCode  `json:"qrCode"`
	Analytics *service.Summary `json:"analytics"`
}

// Get aggregates and returns analytics for one of the caller's codes.
//
//	@Summary		Get QR code analytics
//	@Description	Aggregated scan statistics for a QR code owned by the caller
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"QR code id"
//	@Success		200	{object}	AnalyticsResponse
//	@Failure		404	{object}	errorResponse	"QR code not found"
//	@Failure		500	{object}	errorResponse	"Failed to aggregate analytics"
//	@Router			/api/analytics/{id} [get]
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, "Authentication required", http.StatusUnauthorized)
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeError(w, h.log, "Invalid QR code id", http.StatusBadRequest)
		return
	}

	// Ownership check doubles as the existence check; the 404 answer does
	// not reveal whether the code exists under another owner.
	code, err := h.storage.GetQRCodeByOwnerAndID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			writeError(w, h.log, "QR code not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to resolve qr code for analytics", zap.Int64("qr_code_id", id), zap.Error(err))
		writeError(w, h.log, "Internal server error", http.StatusInternalServerError)
		return
	}

	// There is no safe partial result on the read path, so storage errors
	// surface as 500 here (unlike the best-effort redirect path).
	summary, err := h.aggregator.Aggregate(r.Context(), code.ID)
	if err != nil {
		h.log.Error("failed to aggregate analytics", zap.Int64("qr_code_id", code.ID), zap.Error(err))
		writeError(w, h.log, "Failed to aggregate analytics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, AnalyticsResponse{
		QRCode: AnalyticsQRCode{
			Name:       code.Name,
			URL:        code.URL,
			CreatedAt:  code.CreatedAt,
			TotalScans: summary.TotalScans,
		},
		Analytics: summary,
	}, http.StatusOK)
}
