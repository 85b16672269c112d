package service

import (
	"context"
	"errors"
	"testing"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

func newRFQService() (*RFQService, *recordingNotifier) {
	n := &recordingNotifier{}
	svc := NewRFQService(repository.NewRFQRepository(store.NewMemory()), n)
	svc.now = tickingClock()
	return svc, n
}

func contactDetails() CreateRFQRequest {
	return CreateRFQRequest{
		Name:    "Sam Rivera",
		Email:   "sam@example.com",
		Phone:   "586-555-0101",
		Address: "12 Elm St",
		City:    "Warren",
		ZipCode: "48088",
	}
}

func TestRFQCreateTableRequest(t *testing.T) {
	svc, n := newRFQService()
	req := contactDetails()
	req.TableID = "t1"
	req.TableName = "Olhausen Santa Ana"
	req.TablePrice = ptr(2199.0)
	req.InstallationNeeded = true

	rfq, err := svc.Create(context.Background(), &req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rfq.RFQType != models.RFQTypeTable || rfq.Status != models.RFQNew {
		t.Errorf("type = %s, status = %s", rfq.RFQType, rfq.Status)
	}
	if rfq.TablePrice == nil || *rfq.TablePrice != 2199 {
		t.Errorf("tablePrice = %v", rfq.TablePrice)
	}
	if rfq.InstallationNeeded == nil || !*rfq.InstallationNeeded {
		t.Error("installationNeeded not recorded")
	}
	if rfq.PreferredContact != models.ContactPhone || rfq.Source != "website" {
		t.Errorf("defaults: contact = %s, source = %s", rfq.PreferredContact, rfq.Source)
	}
	if len(n.rfqs) != 1 {
		t.Errorf("notifier got %d rfqs", len(n.rfqs))
	}
}

func TestRFQCreateServiceRequest(t *testing.T) {
	svc, _ := newRFQService()
	req := contactDetails()
	req.ServiceType = "moving"
	req.PreferredContact = "text"

	rfq, err := svc.Create(context.Background(), &req)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rfq.RFQType != models.RFQTypeService || rfq.ServiceType != "moving" {
		t.Errorf("type = %s, serviceType = %s", rfq.RFQType, rfq.ServiceType)
	}
	if rfq.TablePrice != nil || rfq.InstallationNeeded != nil {
		t.Error("service request carries table fields")
	}
}

func TestRFQCreatePrefersTableShape(t *testing.T) {
	svc, _ := newRFQService()
	req := contactDetails()
	req.TableID, req.TableName, req.TablePrice = "t1", "Brunswick", ptr(999.0)
	req.ServiceType = "recovering"

	rfq, err := svc.Create(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}
	if rfq.RFQType != models.RFQTypeTable || rfq.ServiceType != "" {
		t.Errorf("type = %s, serviceType = %q", rfq.RFQType, rfq.ServiceType)
	}
}

func TestRFQCreateRejectsShapeless(t *testing.T) {
	svc, n := newRFQService()

	req := contactDetails()
	req.TableID = "t1"
	req.TableName = "Partial"
	_, err := svc.Create(context.Background(), &req)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "Invalid RFQ type - must include either table information or service type" {
		t.Fatalf("err = %v", err)
	}

	req = contactDetails()
	req.ServiceType = "moving"
	req.Email = ""
	if _, err := svc.Create(context.Background(), &req); !errors.As(err, &verr) || verr.Field != "email" {
		t.Errorf("missing email: err = %v", err)
	}

	req = contactDetails()
	req.ServiceType = "moving"
	req.PreferredContact = "fax"
	if _, err := svc.Create(context.Background(), &req); !errors.As(err, &verr) || verr.Field != "preferredContact" {
		t.Errorf("bad contact: err = %v", err)
	}

	all, _ := svc.List(context.Background(), "")
	if len(all) != 0 || len(n.rfqs) != 0 {
		t.Errorf("stored %d, notified %d", len(all), len(n.rfqs))
	}
}

func TestRFQUpdateAndFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRFQService()
	req := contactDetails()
	req.ServiceType = "repair"
	first, _ := svc.Create(ctx, &req)
	second, _ := svc.Create(ctx, &req)

	updated, err := svc.Update(ctx, first.ID, &UpdateRFQRequest{Status: ptr("quoted"), Notes: ptr("Quoted $350")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.RFQQuoted || updated.Notes != "Quoted $350" {
		t.Errorf("updated = %+v", updated)
	}

	back, err := svc.Update(ctx, first.ID, &UpdateRFQRequest{Status: ptr("new")})
	if err != nil || back.Status != models.RFQNew {
		t.Errorf("any-to-any transition failed: %v", err)
	}

	all, _ := svc.List(ctx, "")
	if len(all) != 2 || all[0].ID != second.ID {
		t.Errorf("list not newest first: %+v", all)
	}

	if _, err := svc.Update(ctx, first.ID, &UpdateRFQRequest{Status: ptr("archived")}); err == nil {
		t.Error("invalid status accepted")
	}
	if _, err := svc.List(ctx, "archived"); err == nil {
		t.Error("invalid status filter accepted")
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, utils.ErrRFQNotFound) {
		t.Errorf("delete missing: err = %v", err)
	}
}
