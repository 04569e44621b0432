package main

import (
	"time"

	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/constants"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/pricing"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo dataset: customers with derived fees, couriers with login
// credentials and a few deliveries in each lifecycle state.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Fatalf("failed to seed default admin: %v", err)
	}

	calculator := pricing.NewCalculator(pricing.Tariff{
		BaseFee:       cfg.Pricing.BaseFee,
		RatePerKm:     cfg.Pricing.RatePerKm,
		RoundingStep:  cfg.Pricing.RoundingStep,
		DetourFactor:  cfg.Pricing.DetourFactor,
		MinDistanceKm: cfg.Pricing.MinDistanceKm,
	})

	lat1, lng1 := -6.914744, 107.609810
	lat2, lng2 := -6.921500, 107.607100
	customers := []models.Customer{
		{Name: "Ibu Sari", Phone: "081234500001", Address: "Jl. Merdeka 12", Lat: &lat1, Lng: &lng1, DistanceKm: models.NewDistanceFromFloat(2.0)},
		{Name: "Pak Dedi", Phone: "081234500002", Address: "Jl. Asia Afrika 88", Lat: &lat2, Lng: &lng2, DistanceKm: models.NewDistanceFromFloat(3.4)},
		{Name: "Ibu Rina", Phone: "081234500003", Address: "Jl. Braga 5", DistanceKm: models.NewDistanceFromFloat(1.0)},
	}
	for i := range customers {
		fee, err := calculator.FeeForDistance(customers[i].DistanceKm.Decimal)
		if err != nil {
			stdLog.Fatalf("failed to derive fee for %s: %v", customers[i].Name, err)
		}
		customers[i].DeliveryFee = fee
		if err := models.DB.Create(&customers[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed customer %s: %v", customers[i].Name, err)
		}
	}

	couriers := []struct {
		courier  models.Courier
		username string
	}{
		{courier: models.Courier{Name: "Andi", Phone: "081234600001", IsAvailable: true}, username: "andi"},
		{courier: models.Courier{Name: "Budi", Phone: "081234600002", IsAvailable: true}, username: "budi"},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("kurir12345"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("failed to hash courier password: %v", err)
	}
	for i := range couriers {
		if err := models.DB.Create(&couriers[i].courier).Error; err != nil {
			stdLog.Fatalf("failed to seed courier %s: %v", couriers[i].courier.Name, err)
		}
		user := models.User{
			Username:     couriers[i].username,
			PasswordHash: string(hash),
			Role:         constants.RoleCourier,
			CourierID:    &couriers[i].courier.ID,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Fatalf("failed to seed courier credential %s: %v", couriers[i].username, err)
		}
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	completedAt := today.Add(10 * time.Hour)
	deliveries := []models.Delivery{
		{
			OrderNo:      "MA" + now.Format("20060102150405") + "000001",
			CustomerID:   customers[0].ID,
			CourierID:    &couriers[0].courier.ID,
			Status:       constants.DeliveryStatusCompleted,
			DeliveryDate: today,
			AssignedAt:   &today,
			CompletedAt:  &completedAt,
		},
		{
			OrderNo:      "MA" + now.Format("20060102150405") + "000002",
			CustomerID:   customers[1].ID,
			CourierID:    &couriers[1].courier.ID,
			Status:       constants.DeliveryStatusOnDelivery,
			DeliveryDate: today,
			AssignedAt:   &today,
		},
		{
			OrderNo:      "MA" + now.Format("20060102150405") + "000003",
			CustomerID:   customers[2].ID,
			Status:       constants.DeliveryStatusPending,
			DeliveryDate: today,
		},
	}
	for i := range deliveries {
		if err := models.DB.Create(&deliveries[i]).Error; err != nil {
			stdLog.Fatalf("failed to seed delivery %s: %v", deliveries[i].OrderNo, err)
		}
	}

	stdLog.Printf("seeded %d customers, %d couriers, %d deliveries",
		len(customers), len(couriers), len(deliveries))
}
