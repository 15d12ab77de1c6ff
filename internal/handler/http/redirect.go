package http

import (
	"QRTrack-Backend/internal/metrics"
	"QRTrack-Backend/internal/repository"
	"QRTrack-Backend/internal/service"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RedirectHandler is the public redirect gateway: it turns GET /q/{shortId}
// into a recorded scan plus a 302 to the destination URL. It owns no business
// rules beyond sequencing the scan recorder and mapping its errors.
type RedirectHandler struct {
	recorder *service.ScanRecorder
	log      *zap.Logger
}

func NewRedirectHandler(recorder *service.ScanRecorder, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		recorder: recorder,
		log:      log,
	}
}

// HandleRedirect serves the tracked redirect.
//
//	@Summary		Redirect by short identifier
//	@Description	Records a scan and redirects to the destination URL
//	@Tags			Redirect
//	@Param			shortId	path	string	true	"Short identifier"
//	@Success		302		"Redirect to destination URL"
//	@Failure		404		{string}	string	"QR code not found"
//	@Router			/q/{shortId} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	shortID := r.PathValue("shortId")
	if shortID == "" {
		http.NotFound(w, r)
		return
	}

	scan := service.ScanContext{
		IPAddress: extractIPAddress(r),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}

	destinationURL, err := h.recorder.RecordScan(r.Context(), shortID, scan)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			h.log.Debug("short id not found", zap.String("short_id", shortID))
			metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
			http.Error(w, "QR code not found", http.StatusNotFound)
			return
		}
		h.log.Error("failed to process redirect", zap.String("short_id", shortID), zap.Error(err))
		metrics.RedirectsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	metrics.RedirectsTotal.WithLabelValues("redirected").Inc()
	http.Redirect(w, r, destinationURL, http.StatusFound)
}

// extractIPAddress extracts the client IP, honoring proxy headers in
// priority order.
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For may hold a comma-separated chain; the client is first
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
