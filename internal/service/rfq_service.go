package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/sse"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// RFQSubmittedMessage is returned to the customer after a successful submission.
const RFQSubmittedMessage = "Quote request submitted successfully. We will contact you within 24 hours."

// RFQService handles quote requests.
type RFQService struct {
	repo     *repository.RFQRepository
	notifier sse.Notifier
	now      func() time.Time
}

func NewRFQService(repo *repository.RFQRepository, notifier sse.Notifier) *RFQService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &RFQService{repo: repo, notifier: notifier, now: time.Now}
}

// CreateRFQRequest is a public quote request. It is a table request when
// tableId, tableName and tablePrice are all present, otherwise a service
// request that needs serviceType.
type CreateRFQRequest struct {
	Name               string   `json:"name" form:"name"`
	Email              string   `json:"email" form:"email"`
	Phone              string   `json:"phone" form:"phone"`
	Address            string   `json:"address" form:"address"`
	City               string   `json:"city" form:"city"`
	ZipCode            string   `json:"zipCode" form:"zipCode"`
	Message            string   `json:"message" form:"message"`
	PreferredContact   string   `json:"preferredContact" form:"preferredContact"`
	Source             string   `json:"source" form:"source"`
	TableID            string   `json:"tableId" form:"tableId"`
	TableName          string   `json:"tableName" form:"tableName"`
	TablePrice         *float64 `json:"tablePrice" form:"tablePrice"`
	InstallationNeeded bool     `json:"installationNeeded" form:"installationNeeded"`
	ServiceType        string   `json:"serviceType" form:"serviceType"`
}

// IsTableRequest reports whether the request carries the full table shape.
func (r *CreateRFQRequest) IsTableRequest() bool {
	return strings.TrimSpace(r.TableID) != "" && strings.TrimSpace(r.TableName) != "" &&
		r.TablePrice != nil && *r.TablePrice != 0
}

// UpdateRFQRequest is the admin triage payload.
type UpdateRFQRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// List returns quote requests newest first.
func (s *RFQService) List(ctx context.Context, status string) ([]models.RFQ, error) {
	if status != "" && !models.RFQStatus(status).Valid() {
		return nil, invalid("status", "status must be one of new, contacted, quoted, closed")
	}
	rfqs, err := s.repo.List(ctx, models.RFQStatus(status))
	if err != nil {
		return nil, storeErr(err, utils.ErrRFQNotFound)
	}
	sort.SliceStable(rfqs, func(i, j int) bool {
		return rfqs[i].SubmittedAt > rfqs[j].SubmittedAt
	})
	return rfqs, nil
}

func (s *RFQService) Get(ctx context.Context, id string) (*models.RFQ, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, utils.ErrRFQNotFound)
	}
	return q, nil
}

// Create validates the request for its shape, stores it with status new and
// notifies connected admins.
func (s *RFQService) Create(ctx context.Context, req *CreateRFQRequest) (*models.RFQ, error) {
	isTable := req.IsTableRequest()
	if !isTable && strings.TrimSpace(req.ServiceType) == "" {
		return nil, invalid("rfqType", "Invalid RFQ type - must include either table information or service type")
	}

	contact := models.ContactMethod(strings.TrimSpace(req.PreferredContact))
	if contact == "" {
		contact = models.ContactPhone
	}

	checks := []fieldCheck{
		field("name", strings.TrimSpace(req.Name), required),
		field("email", strings.TrimSpace(req.Email), required, is.EmailFormat.Error("must be a valid email address")),
		field("phone", strings.TrimSpace(req.Phone), required),
		field("address", strings.TrimSpace(req.Address), required),
		field("city", strings.TrimSpace(req.City), required),
		field("zipCode", strings.TrimSpace(req.ZipCode), required),
	}
	if !isTable {
		checks = append(checks, field("serviceType", strings.TrimSpace(req.ServiceType), required))
	}
	checks = append(checks, field("preferredContact", contact, in(models.ContactMethods, "must be one of phone, email, text")))
	if err := validateFields(checks...); err != nil {
		return nil, err
	}

	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = "website"
	}

	rfq := &models.RFQ{
		CustomerName:     strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Address:          strings.TrimSpace(req.Address),
		City:             strings.TrimSpace(req.City),
		ZipCode:          strings.TrimSpace(req.ZipCode),
		Message:          strings.TrimSpace(req.Message),
		PreferredContact: contact,
		Status:           models.RFQNew,
		SubmittedAt:      utils.FormatISO(s.now()),
		Source:           source,
	}
	if isTable {
		installation := req.InstallationNeeded
		price := *req.TablePrice
		rfq.RFQType = models.RFQTypeTable
		rfq.TableID = strings.TrimSpace(req.TableID)
		rfq.TableName = strings.TrimSpace(req.TableName)
		rfq.TablePrice = &price
		rfq.InstallationNeeded = &installation
	} else {
		rfq.RFQType = models.RFQTypeService
		rfq.ServiceType = strings.TrimSpace(req.ServiceType)
	}

	id, err := s.repo.Create(ctx, rfq)
	if err != nil {
		return nil, storeErr(err, utils.ErrRFQNotFound)
	}
	rfq.ID = id
	log.Info().Str("rfq_id", id).Str("type", string(rfq.RFQType)).Msg("RFQ submitted")

	s.notifier.NotifyRFQCreated(rfq)
	return rfq, nil
}

// Update changes status (any status to any other) and admin notes.
func (s *RFQService) Update(ctx context.Context, id string, req *UpdateRFQRequest) (*models.RFQ, error) {
	if req.Status != nil {
		err := validateFields(field("status", models.RFQStatus(*req.Status), required,
			in(models.RFQStatuses, "must be one of new, contacted, quoted, closed")))
		if err != nil {
			return nil, err
		}
	}

	patch := store.Document{}
	setString(patch, "status", req.Status)
	setString(patch, "notes", req.Notes)

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, storeErr(err, utils.ErrRFQNotFound)
	}
	log.Info().Str("rfq_id", id).Msg("RFQ updated")
	return s.Get(ctx, id)
}

func (s *RFQService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, utils.ErrRFQNotFound)
	}
	log.Info().Str("rfq_id", id).Msg("RFQ deleted")
	return nil
}
