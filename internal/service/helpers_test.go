package service

import (
	"sync"
	"time"

	"github.com/affordablebilliards/billiards_api/internal/models"
)

// tickingClock returns a strictly increasing time on every call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func ptr[T any](v T) *T { return &v }

type recordingNotifier struct {
	mu      sync.Mutex
	rfqs    []*models.RFQ
	reviews []*models.Review
}

func (n *recordingNotifier) NotifyRFQCreated(rfq *models.RFQ) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rfqs = append(n.rfqs, rfq)
}

func (n *recordingNotifier) NotifyReviewSubmitted(review *models.Review) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reviews = append(n.reviews, review)
}
