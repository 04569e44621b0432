package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mediantar/mediantar/internal/http/response"
	"github.com/mediantar/mediantar/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportSummary aggregates deliveries over a date range. Couriers receive
// the restricted view of their own work.
func (h *Handler) ReportSummary(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	summary, err := h.ReportService.Summarize(principal, from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "report build failed", err)
		return
	}
	response.Success(c, summary)
}

// ExportReportCSV renders the summary as a CSV download. Output is
// deterministic for a given dataset.
func (h *Handler) ExportReportCSV(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		return
	}
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	summary, err := h.ReportService.Summarize(principal, from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "report build failed", err)
		return
	}

	body, err := RenderReportCSV(summary)
	if err != nil {
		respondError(c, response.CodeInternal, "report export failed", err)
		return
	}

	filename := fmt.Sprintf("report_%s_%s.csv",
		from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// RenderReportCSV serializes a summary: metric rows first, then one row per
// courier when the breakdown is present.
func RenderReportCSV(summary *service.ReportSummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"metric", "value"},
		{"from", summary.From.Format("2006-01-02")},
		{"to", summary.To.Format("2006-01-02")},
		{"total_deliveries", fmt.Sprintf("%d", summary.TotalDeliveries)},
		{"completed_deliveries", fmt.Sprintf("%d", summary.CompletedDeliveries)},
		{"total_revenue", fmt.Sprintf("%d", summary.TotalRevenue)},
	}
	if summary.AveragePerDay != "" {
		rows = append(rows, []string{"average_per_day", summary.AveragePerDay})
	}
	if summary.TopCourier != "" {
		rows = append(rows,
			[]string{"top_courier", summary.TopCourier},
			[]string{"top_courier_count", fmt.Sprintf("%d", summary.TopCourierCount)},
		)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	if len(summary.CourierPerformance) > 0 {
		if err := w.Write([]string{"courier_id", "courier_name", "deliveries", "completed", "revenue_sum"}); err != nil {
			return nil, err
		}
		for _, row := range summary.CourierPerformance {
			record := []string{
				fmt.Sprintf("%d", row.CourierID),
				row.CourierName,
				fmt.Sprintf("%d", row.Deliveries),
				fmt.Sprintf("%d", row.Completed),
				fmt.Sprintf("%d", row.RevenueSum),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseReportRange reads from/to. Defaults cover the current month to date.
func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := parseDateNullable(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid from date", err)
			return from, to, false
		}
		from = *parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := parseDateNullable(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid to date", err)
			return from, to, false
		}
		to = *parsed
	}
	if to.Before(from) {
		respondError(c, response.CodeBadRequest, "to precedes from", nil)
		return from, to, false
	}
	return from, to, true
}
