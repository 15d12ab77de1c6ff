package http

import (
	"QRTrack-Backend/internal/auth"
	"QRTrack-Backend/internal/domain"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// QRCodesHandler serves the owner-facing CRUD surface for QR codes.
type QRCodesHandler struct {
	registry *service.CodeRegistry
	log      *zap.Logger
	baseURL  string
}

func NewQRCodesHandler(registry *service.CodeRegistry, log *zap.Logger, baseURL string) *QRCodesHandler {
	return &QRCodesHandler{
		registry: registry,
		log:      log,
		baseURL:  baseURL,
	}
}

// SaveQRCodeRequest is the create/overwrite payload. Settings and image data
// are passed through opaquely.
type SaveQRCodeRequest struct {
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	QRImageData string          `json:"qrImageData,omitempty"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

// QRCodeInfo is the public projection of a QR code.
type QRCodeInfo struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	URL         string          `json:"url"`
	ShortID     string          `json:"shortId"`
	Scans       int64           `json:"scans"`
	CreatedAt   time.Time       `json:"createdAt"`
	TrackingURL string          `json:"trackingUrl"`
	QRImageData string          `json:"qrImageData,omitempty"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

// SaveQRCodeResponse is returned from the save endpoint.
type SaveQRCodeResponse struct {
	Message string     `json:"message"`
	QRCode  QRCodeInfo `json:"qrCode"`
}

// ListQRCodesResponse is returned from the list endpoint.
type ListQRCodesResponse struct {
	QRCodes []QRCodeInfo `json:"qrCodes"`
}

// Save creates a QR code or overwrites the caller's existing code with the
// same name, preserving its short identifier and scan counter.
//
//	@Summary		Save a QR code
//	@Description	Create a QR code, or overwrite an existing one with the same name in place
//	@Tags			QRCodes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		SaveQRCodeRequest	true	"QR code payload"
//	@Success		200		{object}	SaveQRCodeResponse	"QR code saved"
//	@Failure		400		{object}	errorResponse		"Invalid request data"
//	@Failure		401		{object}	errorResponse		"Authentication required"
//	@Router			/api/qrcodes [post]
func (h *QRCodesHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req SaveQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid save request", zap.Error(err))
		writeError(w, h.log, "Invalid request format", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.URL == "" {
		writeError(w, h.log, "Name and URL are required", http.StatusBadRequest)
		return
	}

	code, created, err := h.registry.Upsert(r.Context(), userID, service.UpsertInput{
		Name:        req.Name,
		URL:         req.URL,
		QRImageData: req.QRImageData,
		Settings:    datatypes.JSON(req.Settings),
	})
	if err != nil {
		h.log.Error("failed to save qr code", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, h.log, "Failed to save QR code", http.StatusInternalServerError)
		return
	}

	message := "QR code saved successfully"
	if created {
		h.log.Info("qr code created", zap.Int64("user_id", userID), zap.String("short_id", code.ShortID))
	}

	writeJSON(w, h.log, SaveQRCodeResponse{
		Message: message,
		QRCode:  h.toInfo(code),
	}, http.StatusOK)
}

// List returns all codes owned by the caller.
//
//	@Summary		List QR codes
//	@Tags			QRCodes
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ListQRCodesResponse
//	@Router			/api/qrcodes [get]
func (h *QRCodesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.log, "Authentication required", http.StatusUnauthorized)
		return
	}

	codes, err := h.registry.List(r.Context(), userID)
	if err != nil {
		h.log.Error("failed to list qr codes", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, h.log, "Failed to retrieve QR codes", http.StatusInternalServerError)
		return
	}

	infos := make([]QRCodeInfo, len(codes))
	for i, code := range codes {
		infos[i] = h.toInfo(code)
	}

	writeJSON(w, h.log, ListQRCodesResponse{QRCodes: infos}, http.StatusOK)
}

// Get returns one of the caller's codes by id.
//
//	@Summary		Get a QR code
//	@Tags			QRCodes
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"QR code id"
//	@Success		200	{object}	QRCodeInfo
//	@Failure		404	{object}	errorResponse	"QR code not found"
//	@Router			/api/qrcodes/{id} [get]
func (h *QRCodesHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	code, err := h.registry.Get(r.Context(), userID, id)
	if err != nil {
		// Not-owned and nonexistent are indistinguishable on purpose
		if errors.Is(err, repository.ErrCodeNotFound) {
			writeError(w, h.log, "QR code not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to get qr code", zap.Int64("qr_code_id", id), zap.Error(err))
		writeError(w, h.log, "Failed to retrieve QR code", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, h.toInfo(code), http.StatusOK)
}

// Delete removes one of the caller's codes and all its scan events.
//
//	@Summary		Delete a QR code
//	@Description	Delete a QR code and, by cascade, its scan events
//	@Tags			QRCodes
//	@Security		BearerAuth
//	@Param			id	path	int	true	"QR code id"
//	@Success		200	{object}	map[string]string	"QR code deleted"
//	@Failure		404	{object}	errorResponse		"QR code not found"
//	@Router			/api/qrcodes/{id} [delete]
func (h *QRCodesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.registry.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			writeError(w, h.log, "QR code not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to delete qr code", zap.Int64("qr_code_id", id), zap.Error(err))
		writeError(w, h.log, "Failed to delete QR code", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.log, map[string]string{"message": "QR code deleted successfully"}, http.StatusOK)
}

func (h *QRCodesHandler) toInfo(code *domain.QRCode) QRCodeInfo {
	return QRCodeInfo{
		ID:          code.ID,
		Name:        code.Name,
		URL:         code.URL,
		ShortID:     code.ShortID,
		Scans:       code.ScanCount,
		CreatedAt:   code.CreatedAt,
		TrackingURL: h.baseURL + "/q/" + code.ShortID,
		QRImageData: code.QRImageData,
		Settings:    json.RawMessage(code.Settings),
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
