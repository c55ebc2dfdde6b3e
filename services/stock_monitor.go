package services

import (
	"context"
	"log"
	"time"
)

// StockMonitor periodically sweeps expired listings and re-scans stock
// levels, mirroring what Confirm does after each checkout.
type StockMonitor struct {
	Scanner  *LowStockService
	Interval time.Duration
}

func NewStockMonitor(scanner *LowStockService, interval time.Duration) *StockMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StockMonitor{Scanner: scanner, Interval: interval}
}

func (m *StockMonitor) Run(ctx context.Context) {
	m.tick()

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

func (m *StockMonitor) tick() {
	if removed, err := m.Scanner.SweepExpired(); err != nil {
		log.Println("expired listing sweep failed:", err)
	} else if removed > 0 {
		log.Printf("removed %d expired listings", removed)
	}

	if _, err := m.Scanner.Scan(); err != nil {
		log.Println("low stock scan failed:", err)
	}
}
