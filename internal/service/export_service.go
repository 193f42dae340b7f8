package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/repository"
)

// ── export module business errors ──

var (
	ErrExportNoReadings = errors.New("no readings to export")
)

// ExportService export business interface.
//
// Both exports return a buffer plus a suggested filename; the handler sets
// the download headers and writes the bytes.
type ExportService interface {
	// ExportReadings renders the full reading log as an Excel workbook with a
	// Readings sheet and a Summary sheet.
	ExportReadings(ctx context.Context) (*bytes.Buffer, string, error)
	// CampaignCalendar renders the campaign as an iCalendar feed with one
	// all-day event per campaign day.
	CampaignCalendar() (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	campaign *Campaign
	logger   *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, campaign *Campaign, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, campaign: campaign, logger: logger}
}

// ────────────────────── ExportReadings ──────────────────────

func (s *exportService) ExportReadings(ctx context.Context) (*bytes.Buffer, string, error) {
	readings, err := s.repo.Reading.List(ctx, nil)
	if err != nil {
		s.logger.Error("list readings for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(readings) == 0 {
		return nil, "", ErrExportNoReadings
	}

	f := excelize.NewFile()
	defer f.Close()

	const readingsSheet = "Readings"
	if err := f.SetSheetName("Sheet1", readingsSheet); err != nil {
		return nil, "", err
	}

	headers := []string{"Name", "Para", "Total Para", "Campaign Day", "Submitted At"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(readingsSheet, cell, h); err != nil {
			return nil, "", err
		}
	}

	responses := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		responses = append(responses, toReadingResponse(&readings[i]))
	}

	for i, row := range responses {
		values := []interface{}{row.Name, row.Para, row.TotalPara, row.CampaignDay, row.SubmittedAt}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(readingsSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	// Summary sheet
	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, "", err
	}
	summary := summarize(responses)
	summaryRows := [][]interface{}{
		{"Total submissions", summary.TotalSubmissions},
		{"Total para read", summary.TotalParaRead},
		{"Unique participants", summary.UniqueParticipants},
		{"Average para per reading", summary.AverageParaPerReading},
	}
	for i, pair := range summaryRows {
		for col, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+1)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write excel buffer failed", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("quran-track-readings-%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ────────────────────── CampaignCalendar ──────────────────────

func (s *exportService) CampaignCalendar() (*bytes.Buffer, string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Quran Track//Campaign//EN")
	cal.SetName("Quran Reading Campaign")

	now := time.Now()
	for day := 1; day <= s.campaign.Days(); day++ {
		date := s.campaign.Start().AddDate(0, 0, day-1)
		event := cal.AddEvent(fmt.Sprintf("day-%d@quran-track", day))
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Quran reading, day %d of %d", day, s.campaign.Days()))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "quran-track-campaign.ics", nil
}
