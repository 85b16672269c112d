package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// TableService manages the pool table inventory.
type TableService struct {
	repo *repository.TableRepository
	now  func() time.Time
}

func NewTableService(repo *repository.TableRepository) *TableService {
	return &TableService{repo: repo, now: time.Now}
}

// CreateTableRequest is the body of POST /api/tables.
type CreateTableRequest struct {
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Size           string   `json:"size"`
	Condition      string   `json:"condition"`
	Price          *float64 `json:"price"`
	Images         []string `json:"images"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	AdditionalInfo string   `json:"additionalInfo"`
}

// UpdateTableRequest is the body of PUT /api/tables/:id. Only non-nil fields change.
type UpdateTableRequest struct {
	Name           *string              `json:"name"`
	Brand          *string              `json:"brand"`
	Size           *string              `json:"size"`
	Condition      *string              `json:"condition"`
	Price          *float64             `json:"price"`
	OriginalPrice  *float64             `json:"originalPrice"`
	Images         *[]string            `json:"images"`
	Description    *string              `json:"description"`
	Features       *[]string            `json:"features"`
	AdditionalInfo *string              `json:"additionalInfo"`
	Status         *string              `json:"status"`
	DateSold       *string              `json:"dateSold"`
	SoldPrice      *float64             `json:"soldPrice"`
	CustomerInfo   *models.CustomerInfo `json:"customerInfo"`
}

// ReorderItem assigns a position to one table.
type ReorderItem struct {
	ID        string `json:"id"`
	SortOrder *int   `json:"sortOrder"`
}

// List returns tables ordered for display: positioned tables first by
// sortOrder, then the rest, newest dateAdded first within equal positions.
func (s *TableService) List(ctx context.Context, status string) ([]models.PoolTable, error) {
	if status != "" && !models.TableStatus(status).Valid() {
		return nil, invalid("status", "status must be one of available, sold, pending")
	}
	tables, err := s.repo.List(ctx, models.TableStatus(status))
	if err != nil {
		return nil, storeErr(err, utils.ErrTableNotFound)
	}
	SortTables(tables)
	return tables, nil
}

// SortTables orders tables in place for display.
func SortTables(tables []models.PoolTable) {
	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i].SortOrder, tables[j].SortOrder
		switch {
		case a != nil && b != nil && *a != *b:
			return *a < *b
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return tables[i].DateAdded > tables[j].DateAdded
	})
}

func (s *TableService) Get(ctx context.Context, id string) (*models.PoolTable, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, utils.ErrTableNotFound)
	}
	return t, nil
}

func (s *TableService) Create(ctx context.Context, req *CreateTableRequest) (*models.PoolTable, error) {
	err := validateFields(
		field("name", strings.TrimSpace(req.Name), required),
		field("brand", strings.TrimSpace(req.Brand), required),
		field("size", models.TableSize(req.Size), required, in(models.TableSizes, "must be one of 7′, 8′, 8′ Pro, 9′, 10′")),
		field("condition", models.TableCondition(req.Condition), required, in(models.TableConditions, "must be one of Excellent, Good, Fair")),
		field("price", req.Price, required, validation.Min(0.01).Error("must be greater than 0")),
		field("description", strings.TrimSpace(req.Description), required),
	)
	if err != nil {
		return nil, err
	}

	table := &models.PoolTable{
		Name:           strings.TrimSpace(req.Name),
		Brand:          strings.TrimSpace(req.Brand),
		Size:           models.TableSize(req.Size),
		Condition:      models.TableCondition(req.Condition),
		Price:          *req.Price,
		OriginalPrice:  *req.Price,
		Images:         nonNil(req.Images),
		Description:    req.Description,
		Features:       nonNil(req.Features),
		AdditionalInfo: req.AdditionalInfo,
		Status:         models.TableAvailable,
		DateAdded:      utils.FormatISO(s.now()),
	}

	id, err := s.repo.Create(ctx, table)
	if err != nil {
		return nil, storeErr(err, utils.ErrTableNotFound)
	}
	log.Info().Str("table_id", id).Str("name", table.Name).Msg("Table created")
	return s.Get(ctx, id)
}

func (s *TableService) Update(ctx context.Context, id string, req *UpdateTableRequest) (*models.PoolTable, error) {
	if err := validateUpdateTable(req); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := store.Document{}
	setString(patch, "name", trimPtr(req.Name))
	setString(patch, "brand", trimPtr(req.Brand))
	setString(patch, "size", req.Size)
	setString(patch, "condition", req.Condition)
	setString(patch, "description", req.Description)
	setString(patch, "additionalInfo", req.AdditionalInfo)
	setString(patch, "status", req.Status)
	setString(patch, "dateSold", req.DateSold)
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		patch["originalPrice"] = *req.OriginalPrice
	}
	if req.SoldPrice != nil {
		patch["soldPrice"] = *req.SoldPrice
	}
	if req.Images != nil {
		patch["images"] = nonNil(*req.Images)
	}
	if req.Features != nil {
		patch["features"] = nonNil(*req.Features)
	}
	if req.CustomerInfo != nil {
		patch["customerInfo"] = map[string]interface{}{
			"name":     req.CustomerInfo.Name,
			"location": req.CustomerInfo.Location,
		}
	}

	// Marking a table sold records when it happened unless the admin supplied
	// a date or it was already recorded.
	if req.Status != nil && models.TableStatus(*req.Status) == models.TableSold &&
		req.DateSold == nil && (current.Status != models.TableSold || current.DateSold == "") {
		patch["dateSold"] = utils.FormatISO(s.now())
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, storeErr(err, utils.ErrTableNotFound)
	}
	log.Info().Str("table_id", id).Int("fields", len(patch)).Msg("Table updated")
	return s.Get(ctx, id)
}

func validateUpdateTable(req *UpdateTableRequest) error {
	checks := []fieldCheck{
		field("price", req.Price, validation.Min(0.0).Error("must not be negative")),
		field("soldPrice", req.SoldPrice, validation.Min(0.0).Error("must not be negative")),
	}
	if req.Name != nil {
		checks = append(checks, field("name", strings.TrimSpace(*req.Name), required))
	}
	if req.Brand != nil {
		checks = append(checks, field("brand", strings.TrimSpace(*req.Brand), required))
	}
	if req.Description != nil {
		checks = append(checks, field("description", strings.TrimSpace(*req.Description), required))
	}
	if req.Size != nil {
		checks = append(checks, field("size", models.TableSize(*req.Size), required, in(models.TableSizes, "must be one of 7′, 8′, 8′ Pro, 9′, 10′")))
	}
	if req.Condition != nil {
		checks = append(checks, field("condition", models.TableCondition(*req.Condition), required, in(models.TableConditions, "must be one of Excellent, Good, Fair")))
	}
	if req.Status != nil {
		checks = append(checks, field("status", models.TableStatus(*req.Status), required, in(models.TableStatuses, "must be one of available, sold, pending")))
	}
	return validateFields(checks...)
}

func (s *TableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, utils.ErrTableNotFound)
	}
	log.Info().Str("table_id", id).Msg("Table deleted")
	return nil
}

// Reorder stores the admin's drag-and-drop order in one atomic write.
func (s *TableService) Reorder(ctx context.Context, items []ReorderItem) error {
	if len(items) == 0 {
		return invalid("updates", "updates must contain at least one table")
	}
	orders := make(map[string]int, len(items))
	for i, item := range items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return invalid("updates", fmt.Sprintf("updates[%d].id is required", i))
		}
		if item.SortOrder == nil {
			return invalid("updates", fmt.Sprintf("updates[%d].sortOrder is required", i))
		}
		if *item.SortOrder < 0 {
			return invalid("updates", fmt.Sprintf("updates[%d].sortOrder must not be negative", i))
		}
		if _, dup := orders[id]; dup {
			return invalid("updates", fmt.Sprintf("updates contains table %s more than once", id))
		}
		orders[id] = *item.SortOrder
	}

	if err := s.repo.UpdateSortOrders(ctx, orders); err != nil {
		return storeErr(err, utils.ErrTableNotFound)
	}
	log.Info().Int("count", len(orders)).Msg("Tables reordered")
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func setString(patch store.Document, key string, v *string) {
	if v != nil {
		patch[key] = *v
	}
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
