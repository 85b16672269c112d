package sse

import (
	"fmt"
	"time"

	"github.com/affordablebilliards/billiards_api/internal/models"
)

// Notifier is the interface services use to announce new submissions.
type Notifier interface {
	NotifyRFQCreated(rfq *models.RFQ)
	NotifyReviewSubmitted(review *models.Review)
}

// HubNotifier implements Notifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyRFQCreated(rfq *models.RFQ) {
	if n.hub.ClientCount() == 0 {
		return
	}
	summary := fmt.Sprintf("New quote request from %s", rfq.CustomerName)
	if rfq.TableName != "" {
		summary += " for " + rfq.TableName
	}
	n.hub.Broadcast(&Event{
		Event:     EventRFQCreated,
		ID:        rfq.ID,
		Summary:   summary,
		Data:      rfq,
		Timestamp: time.Now(),
	})
}

func (n *HubNotifier) NotifyReviewSubmitted(review *models.Review) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&Event{
		Event:     EventReviewSubmitted,
		ID:        review.ID,
		Summary:   fmt.Sprintf("%s left a %d-star review", review.CustomerName, review.Rating),
		Data:      review,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyRFQCreated(rfq *models.RFQ)            {}
func (NopNotifier) NotifyReviewSubmitted(review *models.Review) {}
