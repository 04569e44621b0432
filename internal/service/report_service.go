package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mediantar/mediantar/internal/cache"
	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/repository"
)

// ReportService delivery reporting aggregator
type ReportService struct {
	cfg          *config.Config
	deliveryRepo repository.DeliveryRepository
	courierRepo  repository.CourierRepository
}

// NewReportService creates a report service
func NewReportService(cfg *config.Config, deliveryRepo repository.DeliveryRepository, courierRepo repository.CourierRepository) *ReportService {
	return &ReportService{
		cfg:          cfg,
		deliveryRepo: deliveryRepo,
		courierRepo:  courierRepo,
	}
}

// CourierPerformanceRow per-courier aggregate
type CourierPerformanceRow struct {
	CourierID   uint   `json:"courier_id"`
	CourierName string `json:"courier_name"`
	Deliveries  int64  `json:"deliveries"`
	Completed   int64  `json:"completed"`
	RevenueSum  int64  `json:"revenue_sum"`
}

// ReportSummary aggregate over a date range. Courier views carry only the
// first three fields; the rest stay zero-valued.
type ReportSummary struct {
	From                time.Time               `json:"from"`
	To                  time.Time               `json:"to"`
	TotalDeliveries     int64                   `json:"total_deliveries"`
	CompletedDeliveries int64                   `json:"completed_deliveries"`
	TotalRevenue        int64                   `json:"total_revenue"`
	AveragePerDay       string                  `json:"average_per_day,omitempty"`
	TopCourier          string                  `json:"top_courier,omitempty"`
	TopCourierCount     int64                   `json:"top_courier_count,omitempty"`
	CourierPerformance  []CourierPerformanceRow `json:"courier_performance,omitempty"`
}

// BuildSummary aggregates a delivery set. Pure: identical input always
// yields the identical summary, whatever the output target. Revenue is the
// customer fee of completed deliveries. Courier principals get the
// restricted view without per-courier breakdowns.
func BuildSummary(principal Principal, deliveries []models.Delivery, couriers []models.Courier, from, to time.Time) ReportSummary {
	summary := ReportSummary{From: from, To: to}
	perCourier := make(map[uint]*CourierPerformanceRow, len(couriers))
	order := make([]uint, 0, len(couriers))
	for _, courier := range couriers {
		perCourier[courier.ID] = &CourierPerformanceRow{CourierID: courier.ID, CourierName: courier.Name}
		order = append(order, courier.ID)
	}

	for _, delivery := range deliveries {
		summary.TotalDeliveries++
		completed := delivery.Status == constants.DeliveryStatusCompleted
		if completed {
			summary.CompletedDeliveries++
			if delivery.Customer != nil {
				summary.TotalRevenue += delivery.Customer.DeliveryFee
			}
		}
		if delivery.CourierID != nil {
			if row, ok := perCourier[*delivery.CourierID]; ok {
				row.Deliveries++
				if completed {
					row.Completed++
					if delivery.Customer != nil {
						row.RevenueSum += delivery.Customer.DeliveryFee
					}
				}
			}
		}
	}

	if principal.IsCourier() {
		return summary
	}

	days := daysInclusive(from, to)
	summary.AveragePerDay = fmt.Sprintf("%.1f", float64(summary.TotalDeliveries)/math.Max(1, float64(days)))

	summary.TopCourier = constants.ReportNoData
	for _, id := range order {
		row := perCourier[id]
		if row.Deliveries > summary.TopCourierCount {
			summary.TopCourier = row.CourierName
			summary.TopCourierCount = row.Deliveries
		}
	}

	rows := make([]CourierPerformanceRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *perCourier[id])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Deliveries > rows[j].Deliveries
	})
	summary.CourierPerformance = rows

	return summary
}

// Summarize loads the date-bounded delivery set and aggregates it. Admin
// summaries are briefly cached; courier views always hit the database since
// they are already narrowed to one courier.
func (s *ReportService) Summarize(principal Principal, from, to time.Time) (*ReportSummary, error) {
	cacheKey := ""
	if principal.IsAdmin() && cache.Enabled() {
		cacheKey = fmt.Sprintf("report:summary:%s:%s", from.Format("20060102"), to.Format("20060102"))
		var cached ReportSummary
		hit, err := cache.GetJSON(context.Background(), cacheKey, &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	filter := repository.DeliveryListFilter{
		PageSize:      constants.PageSizeAll,
		WithRelations: true,
	}
	fromDay := truncateToDay(from)
	toExclusive := truncateToDay(to).AddDate(0, 0, 1)
	filter.DateFrom = &fromDay
	filter.DateTo = &toExclusive
	if principal.IsCourier() {
		filter.CourierID = principal.CourierID
	}

	deliveries, _, err := s.deliveryRepo.List(filter)
	if err != nil {
		return nil, wrapPersistence("report load", err)
	}
	couriers, _, err := s.courierRepo.List(repository.CourierListFilter{PageSize: constants.PageSizeAll})
	if err != nil {
		return nil, wrapPersistence("report courier load", err)
	}

	summary := BuildSummary(principal, deliveries, couriers, fromDay, truncateToDay(to))

	if cacheKey != "" {
		ttl := time.Duration(s.cfg.Report.CacheTTLSeconds) * time.Second
		if ttl > 0 {
			_ = cache.SetJSON(context.Background(), cacheKey, summary, ttl)
		}
	}
	return &summary, nil
}

func daysInclusive(from, to time.Time) int {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)
	if toDay.Before(fromDay) {
		return 1
	}
	return int(toDay.Sub(fromDay).Hours()/24) + 1
}
