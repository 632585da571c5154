// Package scheduler provides background monitoring jobs for the pharmacy API.
// It runs a periodic low-stock sweep over the inventory and watches for orders
// that have been sitting in pending for too long, using dependency injection
// for the store.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mylittlefarma/pharmacy-api/interfaces"
	"github.com/mylittlefarma/pharmacy-api/logging"
	"github.com/mylittlefarma/pharmacy-api/metrics"
)

// Compile-time check to ensure Scheduler implements the interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler runs inventory and order monitoring jobs
type Scheduler struct {
	store             interfaces.PharmacyStore
	scheduler         *gocron.Scheduler
	lowStockThreshold int
	pendingMaxAge     time.Duration
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(store interfaces.PharmacyStore, lowStockThreshold int, pendingMaxAge time.Duration) *Scheduler {
	return &Scheduler{
		store:             store,
		scheduler:         gocron.NewScheduler(time.Local),
		lowStockThreshold: lowStockThreshold,
		pendingMaxAge:     pendingMaxAge,
	}
}

// Start initializes the low-stock sweep and stale-order monitoring
func (s *Scheduler) Start() error {
	// Initial sweep so the gauge is populated right away
	if err := s.sweepLowStock(); err != nil {
		logging.Error("Failed to perform initial low-stock sweep", "error", err)
		return fmt.Errorf("initial low-stock sweep failed: %w", err)
	}

	// Sweep inventory at 06:00 and 18:00 daily
	_, err := s.scheduler.Every(1).Days().At("06:00;18:00").Do(func() {
		if err := s.sweepLowStock(); err != nil {
			logging.Error("Failed to sweep low stock", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule low-stock sweep", "error", err)
		return fmt.Errorf("failed to schedule low-stock sweep: %w", err)
	}

	// Check for stale pending orders every hour
	_, err = s.scheduler.Every(1).Hours().Do(func() {
		if err := s.checkStalePending(); err != nil {
			logging.Error("Failed to check stale pending orders", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule stale-order check", "error", err)
		return fmt.Errorf("failed to schedule stale-order check: %w", err)
	}

	s.scheduler.StartAsync()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sweepLowStock reports every medication at or below the threshold
func (s *Scheduler) sweepLowStock() error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	low, err := s.store.ListLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return fmt.Errorf("failed to list low stock: %w", err)
	}

	metrics.LowStockMedications.Set(float64(len(low)))

	for _, med := range low {
		logging.Warn("Medication low on stock",
			"medication_id", med.ID,
			"name", med.Name,
			"quantity", med.Quantity,
			"threshold", s.lowStockThreshold,
		)
	}

	logging.Info("Low-stock sweep completed",
		"duration", time.Since(start).String(),
		"low_stock_count", len(low),
	)

	return nil
}

// checkStalePending warns about orders left pending past the allowed age
func (s *Scheduler) checkStalePending() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.pendingMaxAge)
	stale, err := s.store.StalePendingOrders(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale pending orders: %w", err)
	}

	for _, order := range stale {
		logging.Warn("Order pending for too long",
			"order_id", order.ID,
			"customer", order.Customer,
			"created_date", order.CreatedDate.Format(time.RFC3339),
		)
	}

	if len(stale) > 0 {
		logging.Info("Stale pending order check completed", "stale_count", len(stale))
	}

	return nil
}
