package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mediantar/mediantar/internal/service"
)

func sampleSummary() *service.ReportSummary {
	return &service.ReportSummary{
		From:                time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
		To:                  time.Date(2026, 8, 2, 0, 0, 0, 0, time.Local),
		TotalDeliveries:     3,
		CompletedDeliveries: 2,
		TotalRevenue:        14000,
		AveragePerDay:       "1.5",
		TopCourier:          "Andi",
		TopCourierCount:     2,
		CourierPerformance: []service.CourierPerformanceRow{
			{CourierID: 1, CourierName: "Andi", Deliveries: 2, Completed: 2, RevenueSum: 14000},
			{CourierID: 2, CourierName: "Budi", Deliveries: 1, Completed: 0, RevenueSum: 0},
		},
	}
}

func TestRenderReportCSV(t *testing.T) {
	body, err := RenderReportCSV(sampleSummary())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		"metric,value",
		"from,2026-08-01",
		"total_deliveries,3",
		"completed_deliveries,2",
		"total_revenue,14000",
		"average_per_day,1.5",
		"top_courier,Andi",
		"courier_id,courier_name,deliveries,completed,revenue_sum",
		"1,Andi,2,2,14000",
		"2,Budi,1,0,0",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("csv should contain %q, got:\n%s", want, text)
		}
	}
}

func TestRenderReportCSVDeterministic(t *testing.T) {
	first, err := RenderReportCSV(sampleSummary())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	second, err := RenderReportCSV(sampleSummary())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("identical summaries should render identical csv")
	}
}

func TestRenderReportCSVRestrictedView(t *testing.T) {
	summary := &service.ReportSummary{
		From:                time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local),
		To:                  time.Date(2026, 8, 2, 0, 0, 0, 0, time.Local),
		TotalDeliveries:     1,
		CompletedDeliveries: 1,
		TotalRevenue:        6000,
	}
	body, err := RenderReportCSV(summary)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	text := string(body)
	if strings.Contains(text, "top_courier") {
		t.Fatalf("restricted view should not carry top courier rows, got:\n%s", text)
	}
	if strings.Contains(text, "courier_id") {
		t.Fatalf("restricted view should not carry the per-courier table, got:\n%s", text)
	}
}
