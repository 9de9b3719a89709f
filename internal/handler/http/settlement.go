package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/beginal/jeongsan-admin-sub000/internal/handler/http/response"
)

// maxUploadBytes caps the whole weekly batch; individual workbooks run a
// few megabytes at most.
const maxUploadBytes = 50 << 20

type SettlementHandler interface {
	RunWeekly(w http.ResponseWriter, r *http.Request)
	ExportWeekly(w http.ResponseWriter, r *http.Request)
}

type settlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &settlementHandlerImpl{
		settlementService: settlementService,
	}
}

// decodeUploads reads the multipart batch. Workbooks arrive as repeated
// "files" parts; sheet passwords, when present, as repeated "passwords"
// values matched to files by position. An empty password value means the
// workbook at that position is not protected.
func decodeUploads(r *http.Request) (settlement.RunRequest, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return settlement.RunRequest{}, fmt.Errorf("parse multipart form: %w", err)
	}

	var req settlement.RunRequest
	if r.MultipartForm == nil {
		return req, nil
	}

	passwords := r.MultipartForm.Value["passwords"]
	for i, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			return settlement.RunRequest{}, fmt.Errorf("open uploaded file %q: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return settlement.RunRequest{}, fmt.Errorf("read uploaded file %q: %w", header.Filename, err)
		}

		upload := settlement.Upload{
			Name: header.Filename,
			Data: data,
		}
		if i < len(passwords) {
			upload.Password = passwords[i]
		}
		req.Uploads = append(req.Uploads, upload)
	}
	return req, nil
}

// RunWeekly implements SettlementHandler.
func (h *settlementHandlerImpl) RunWeekly(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUploads(r)
	if err != nil {
		slog.Error("RunWeekly decode error", "error", err)
		response.BadRequest(w, "Invalid upload format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("RunWeekly validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	result, err := h.settlementService.RunWeekly(r.Context(), req)
	if err != nil {
		slog.Error("RunWeekly service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Weekly settlement computed", "rows", len(result.Rows), "period_start", result.PeriodStart, "period_end", result.PeriodEnd)
	response.Success(w, result)
}

// ExportWeekly implements SettlementHandler.
func (h *settlementHandlerImpl) ExportWeekly(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUploads(r)
	if err != nil {
		slog.Error("ExportWeekly decode error", "error", err)
		response.BadRequest(w, "Invalid upload format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("ExportWeekly validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	data, filename, err := h.settlementService.ExportWeekly(r.Context(), req)
	if err != nil {
		slog.Error("ExportWeekly service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Weekly settlement exported", "filename", filename, "bytes", len(data))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
