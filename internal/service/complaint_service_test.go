package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/repository"

	"gorm.io/gorm"
)

func newComplaintServiceForTest(t *testing.T) (*ComplaintService, *recordingNotifier, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t)
	notifier := &recordingNotifier{}
	return NewComplaintService(repository.NewComplaintRepository(db), notifier), notifier, db
}

func validComplaintInput() CreateComplaintInput {
	return CreateComplaintInput{
		Title:       "Printer broken",
		Description: "Paper jams on every page",
		Category:    "Product",
		Priority:    "High",
	}
}

func TestCreateComplaintRoundTrip(t *testing.T) {
	svc, notifier, _ := newComplaintServiceForTest(t)

	created, err := svc.Create(validComplaintInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != models.ComplaintStatusPending {
		t.Fatalf("expected Pending, got %s", created.Status)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Printer broken" || got.Description != "Paper jams on every page" ||
		got.Category != models.ComplaintCategoryProduct || got.Priority != models.ComplaintPriorityHigh ||
		got.Status != models.ComplaintStatusPending || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected stored complaint: %+v", got)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != "created" || notifier.calls[0].id != created.ID {
		t.Fatalf("expected one created notification, got %+v", notifier.calls)
	}
}

func TestCreateComplaintSurvivesNotifierFailure(t *testing.T) {
	svc, notifier, db := newComplaintServiceForTest(t)
	notifier.failures = []error{errors.New("smtp down")}

	created, err := svc.Create(validComplaintInput())
	if err != nil {
		t.Fatalf("notifier failure must not fail creation: %v", err)
	}
	if created == nil || created.ID == 0 || created.Status != models.ComplaintStatusPending {
		t.Fatalf("expected the persisted complaint back, got %+v", created)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != "created" {
		t.Fatalf("expected exactly one notification attempt, got %+v", notifier.calls)
	}

	var count int64
	if err := db.Model(&models.Complaint{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected the complaint to stay persisted, got %d rows", count)
	}
	if _, err := svc.Get(created.ID); err != nil {
		t.Fatalf("created complaint should be retrievable: %v", err)
	}
}

func TestCreateComplaintMissingFieldPersistsNothing(t *testing.T) {
	svc, notifier, db := newComplaintServiceForTest(t)

	fields := []func(*CreateComplaintInput){
		func(in *CreateComplaintInput) { in.Title = "" },
		func(in *CreateComplaintInput) { in.Description = "   " },
		func(in *CreateComplaintInput) { in.Category = "" },
		func(in *CreateComplaintInput) { in.Priority = "" },
	}
	for i, mutate := range fields {
		input := validComplaintInput()
		mutate(&input)
		if _, err := svc.Create(input); !errors.Is(err, ErrComplaintFieldRequired) || !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected field required validation error, got %v", i, err)
		}
	}

	var count int64
	db.Model(&models.Complaint{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected zero records, got %d", count)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("expected no notifications, got %+v", notifier.calls)
	}
}

func TestCreateComplaintRejectsUnknownEnums(t *testing.T) {
	svc, _, db := newComplaintServiceForTest(t)

	input := validComplaintInput()
	input.Category = "Billing"
	if _, err := svc.Create(input); !errors.Is(err, ErrComplaintCategoryInvalid) {
		t.Fatalf("expected category error, got %v", err)
	}
	input = validComplaintInput()
	input.Priority = "urgent"
	if _, err := svc.Create(input); !errors.Is(err, ErrComplaintPriorityInvalid) {
		t.Fatalf("expected priority error, got %v", err)
	}
	var count int64
	db.Model(&models.Complaint{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected zero records, got %d", count)
	}
}

func TestCreateComplaintStoreFailureIsDependencyError(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewComplaintService(failingComplaintRepo{}, notifier)
	_, err := svc.Create(validComplaintInput())
	if !errors.Is(err, ErrDependency) || !errors.Is(err, errStoreDown) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("no notification expected after failed mutation")
	}
}

func TestTransitionRejectsInvalidStatusBeforeStoreAccess(t *testing.T) {
	db := openServiceTestDB(t)
	repo := &countingComplaintRepo{ComplaintRepository: repository.NewComplaintRepository(db)}
	notifier := &recordingNotifier{}
	svc := NewComplaintService(repo, notifier)

	for _, raw := range []string{"Closed", "pending", "In progress", ""} {
		if _, err := svc.Transition(1, raw); !errors.Is(err, ErrComplaintStatusInvalid) {
			t.Fatalf("status %q: expected invalid status error, got %v", raw, err)
		}
	}
	if repo.getCalls != 0 || repo.updateCalls != 0 {
		t.Fatalf("store accessed for invalid status: get=%d update=%d", repo.getCalls, repo.updateCalls)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("no notification expected")
	}
}

func TestTransitionMissingComplaintIsNotFound(t *testing.T) {
	svc, notifier, _ := newComplaintServiceForTest(t)
	_, err := svc.Transition(404, "Resolved")
	if !errors.Is(err, ErrComplaintNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("no notification expected")
	}
}

func TestTransitionIsIdempotent(t *testing.T) {
	svc, notifier, _ := newComplaintServiceForTest(t)
	created, err := svc.Create(validComplaintInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := svc.Transition(created.ID, "InProgress")
	if err != nil {
		t.Fatalf("first transition failed: %v", err)
	}
	second, err := svc.Transition(created.ID, "InProgress")
	if err != nil {
		t.Fatalf("second transition failed: %v", err)
	}
	if first.Status != second.Status || first.Title != second.Title || !first.CreatedAt.Equal(second.CreatedAt) {
		t.Fatalf("idempotent transition changed record: %+v vs %+v", first, second)
	}
	stored, _ := svc.Get(created.ID)
	if stored.Status != models.ComplaintStatusInProgress {
		t.Fatalf("unexpected stored status %s", stored.Status)
	}
	if len(notifier.calls) != 3 {
		t.Fatalf("expected created + two status notifications, got %d", len(notifier.calls))
	}
}

func TestSequentialTransitionsNotifyOnceEachDespiteFailure(t *testing.T) {
	svc, notifier, _ := newComplaintServiceForTest(t)
	created, err := svc.Create(validComplaintInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	notifier.calls = nil
	notifier.failures = []error{errors.New("smtp unreachable")}

	if _, err := svc.Transition(created.ID, "InProgress"); err != nil {
		t.Fatalf("notifier failure must not fail transition: %v", err)
	}
	if _, err := svc.Transition(created.ID, "Resolved"); err != nil {
		t.Fatalf("second transition failed: %v", err)
	}

	stored, _ := svc.Get(created.ID)
	if stored.Status != models.ComplaintStatusResolved {
		t.Fatalf("expected Resolved, got %s", stored.Status)
	}
	if len(notifier.calls) != 2 {
		t.Fatalf("expected exactly two notification attempts, got %d", len(notifier.calls))
	}
	if notifier.calls[0].status != models.ComplaintStatusInProgress || notifier.calls[1].status != models.ComplaintStatusResolved {
		t.Fatalf("unexpected notification order: %+v", notifier.calls)
	}
}

func TestEveryStatusPairIsAllowed(t *testing.T) {
	for _, from := range models.ComplaintStatuses {
		for _, to := range models.ComplaintStatuses {
			if !CanTransition(from, to) {
				t.Fatalf("expected %s -> %s to be allowed", from, to)
			}
		}
	}
	if CanTransition(models.ComplaintStatus("Archived"), models.ComplaintStatusPending) {
		t.Fatalf("unknown source status must not transition")
	}
}

func TestListComplaintsPagination(t *testing.T) {
	svc, _, _ := newComplaintServiceForTest(t)
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}
	for i := 0; i < 25; i++ {
		input := validComplaintInput()
		input.Title = fmt.Sprintf("c%02d", i)
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	items, total, err := svc.List(ListComplaintsInput{Page: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 25 || len(items) != 10 {
		t.Fatalf("unexpected page: total=%d len=%d", total, len(items))
	}
	if items[0].Title != "c14" || items[9].Title != "c05" {
		t.Fatalf("unexpected ordering: first=%s last=%s", items[0].Title, items[9].Title)
	}

	_, _, err = svc.List(ListComplaintsInput{Status: "Done"})
	if !errors.Is(err, ErrComplaintStatusInvalid) {
		t.Fatalf("expected invalid status filter error, got %v", err)
	}
}

func TestListComplaintsClampsPageSize(t *testing.T) {
	svc, _, _ := newComplaintServiceForTest(t)
	if _, err := svc.Create(validComplaintInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	items, total, err := svc.List(ListComplaintsInput{Page: 0, PageSize: 1000})
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("unexpected clamp result: total=%d len=%d err=%v", total, len(items), err)
	}
}

func TestGetComplaintStoreFailure(t *testing.T) {
	svc := NewComplaintService(failingComplaintRepo{}, nil)
	if _, err := svc.Get(1); !errors.Is(err, ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
