package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/affordablebilliards/billiards_api/internal/models"
)

// Activity is one entry of the dashboard's recent activity feed.
type Activity struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// DashboardStats summarises the back-office.
type DashboardStats struct {
	TotalTables     int        `json:"totalTables"`
	AvailableTables int        `json:"availableTables"`
	SoldTables      int        `json:"soldTables"`
	PendingTables   int        `json:"pendingTables"`
	PendingReviews  int        `json:"pendingReviews"`
	NewRFQs         int        `json:"newRFQs"`
	TotalRFQs       int        `json:"totalRFQs"`
	RecentActivity  []Activity `json:"recentActivity"`
}

const (
	recentRFQs    = 3
	recentReviews = 2
	recentMax     = 5
)

type DashboardService struct {
	tables  *TableService
	reviews *ReviewService
	rfqs    *RFQService
}

func NewDashboardService(tables *TableService, reviews *ReviewService, rfqs *RFQService) *DashboardService {
	return &DashboardService{tables: tables, reviews: reviews, rfqs: rfqs}
}

// Stats loads tables, pending reviews and RFQs concurrently and aggregates them.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		tables  []models.PoolTable
		pending []models.Review
		rfqs    []models.RFQ
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tables, err = s.tables.List(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.reviews.List(gctx, string(models.ReviewPending), true)
		return err
	})
	g.Go(func() error {
		var err error
		rfqs, err = s.rfqs.List(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalTables:    len(tables),
		PendingReviews: len(pending),
		TotalRFQs:      len(rfqs),
		RecentActivity: recentActivity(rfqs, pending),
	}
	for _, t := range tables {
		switch t.Status {
		case models.TableAvailable:
			stats.AvailableTables++
		case models.TableSold:
			stats.SoldTables++
		case models.TablePending:
			stats.PendingTables++
		}
	}
	for _, q := range rfqs {
		if q.Status == models.RFQNew {
			stats.NewRFQs++
		}
	}
	return stats, nil
}

// recentActivity merges the newest RFQs and pending reviews, newest first.
// Both inputs are already sorted newest first.
func recentActivity(rfqs []models.RFQ, pending []models.Review) []Activity {
	out := make([]Activity, 0, recentMax)
	for i := 0; i < len(rfqs) && i < recentRFQs; i++ {
		q := rfqs[i]
		subject := q.ServiceType
		if q.RFQType == models.RFQTypeTable {
			subject = q.TableName
		}
		out = append(out, Activity{
			Type:        "rfq",
			ID:          q.ID,
			Title:       fmt.Sprintf("New quote request from %s", q.CustomerName),
			Description: subject,
			Status:      string(q.Status),
			Timestamp:   q.SubmittedAt,
		})
	}
	for i := 0; i < len(pending) && i < recentReviews; i++ {
		r := pending[i]
		out = append(out, Activity{
			Type:        "review",
			ID:          r.ID,
			Title:       fmt.Sprintf("%d-star review from %s", r.Rating, r.CustomerName),
			Description: r.Service,
			Status:      string(r.Status),
			Timestamp:   r.DateSubmitted,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if len(out) > recentMax {
		out = out[:recentMax]
	}
	return out
}
