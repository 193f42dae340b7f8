package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Tafhim-87/Quran-track/internal/service"
	"github.com/Tafhim-87/Quran-track/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler export module HTTP handler.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReadings downloads the reading log as an Excel workbook.
// GET /api/v1/export/readings
func (h *ExportHandler) ExportReadings(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportReadings(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoReadings) {
			response.NotFound(c, 20201, "no readings to export")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar serves the campaign as an iCalendar feed.
// GET /api/v1/campaign/calendar.ics
func (h *ExportHandler) Calendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.CampaignCalendar()
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
