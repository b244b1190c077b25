// AngelaMos | 2026
// service_test.go

package lead

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearmeb2b/backoffice/internal/business"
	"github.com/nearmeb2b/backoffice/internal/core"
)

type fakeLeadRepository struct {
	mu    sync.Mutex
	store map[string]*Lead
}

func newFakeLeadRepository() *fakeLeadRepository {
	return &fakeLeadRepository{store: make(map[string]*Lead)}
}

func (f *fakeLeadRepository) Create(_ context.Context, l *Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	clone := *l
	f.store[l.ID] = &clone
	return nil
}

func (f *fakeLeadRepository) GetByID(_ context.Context, id string) (*Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("get lead: %w", core.ErrNotFound)
	}
	clone := *l
	return &clone, nil
}

func (f *fakeLeadRepository) UpdateStatus(
	_ context.Context,
	id, status string,
) (*Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("update lead status: %w", core.ErrNotFound)
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	clone := *l
	return &clone, nil
}

func (f *fakeLeadRepository) AssignBusiness(
	_ context.Context,
	id, businessID string,
) (*Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.store[id]
	if !ok {
		return nil, fmt.Errorf("assign lead: %w", core.ErrNotFound)
	}
	l.AssignedBusinessID = &businessID
	l.UpdatedAt = time.Now()
	clone := *l
	return &clone, nil
}

func (f *fakeLeadRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.store[id]; !ok {
		return fmt.Errorf("delete lead: %w", core.ErrNotFound)
	}
	delete(f.store, id)
	return nil
}

func (f *fakeLeadRepository) List(
	_ context.Context,
	params ListLeadParams,
) ([]Lead, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []Lead
	for _, l := range f.store {
		if params.AssignedTo != "" &&
			(l.AssignedTo == nil || *l.AssignedTo != params.AssignedTo) {
			continue
		}
		if params.Status != "" && l.Status != params.Status {
			continue
		}
		out = append(out, *l)
	}
	return out, len(out), nil
}

var _ Repository = (*fakeLeadRepository)(nil)

type fakeDirectory struct {
	businesses map[string]*business.Business
}

func (f *fakeDirectory) GetByID(
	_ context.Context,
	id string,
) (*business.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, fmt.Errorf("get business: %w", core.ErrNotFound)
	}
	return b, nil
}

var (
	adminActor    = core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	salesmanActor = core.Actor{UserID: uuid.New().String(), Role: core.RoleSalesman}
)

func newTestService(approvalStatus string) (*Service, *fakeLeadRepository, string) {
	repo := newFakeLeadRepository()
	businessID := uuid.New().String()
	directory := &fakeDirectory{businesses: map[string]*business.Business{
		businessID: {
			ID:             businessID,
			ApprovalStatus: approvalStatus,
		},
	}}
	return NewService(repo, directory), repo, businessID
}

func seedLead(t *testing.T, repo *fakeLeadRepository, assignedTo *string) *Lead {
	t.Helper()

	l := &Lead{
		ID:           uuid.New().String(),
		CustomerName: "Ravi Kumar",
		Phone:        "+919811122233",
		Message:      "need a plumber this week",
		Status:       StatusNew,
		AssignedTo:   assignedTo,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	return l
}

func TestCreateAssignsSalesman(t *testing.T) {
	svc, _, _ := newTestService(business.ApprovalApproved)

	l, err := svc.Create(context.Background(), salesmanActor, CreateLeadRequest{
		CustomerName: "Meena Joshi",
		Phone:        "+919822334455",
		Message:      "interested in catering",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusNew, l.Status)
	require.NotNil(t, l.AssignedTo)
	assert.Equal(t, salesmanActor.UserID, *l.AssignedTo)
}

func TestUpdateStatusFreelySettable(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	l := seedLead(t, repo, &salesmanActor.UserID)
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, adminActor, l.ID,
		UpdateLeadStatusRequest{Status: StatusConverted})
	require.NoError(t, err)
	assert.Equal(t, StatusConverted, got.Status)

	// No monotonicity: converted can fall back to contacted.
	got, err = svc.UpdateStatus(ctx, adminActor, l.ID,
		UpdateLeadStatusRequest{Status: StatusContacted})
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	l := seedLead(t, repo, nil)

	_, err := svc.UpdateStatus(context.Background(), adminActor, l.ID,
		UpdateLeadStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateStatusForeignLeadForbidden(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	other := uuid.New().String()
	l := seedLead(t, repo, &other)

	_, err := svc.UpdateStatus(context.Background(), salesmanActor, l.ID,
		UpdateLeadStatusRequest{Status: StatusContacted})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestAssignRequiresApprovedBusiness(t *testing.T) {
	svc, repo, businessID := newTestService(business.ApprovalPending)
	l := seedLead(t, repo, nil)

	_, err := svc.Assign(context.Background(), adminActor, l.ID,
		AssignLeadRequest{BusinessID: businessID})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestAssignSetsBusiness(t *testing.T) {
	svc, repo, businessID := newTestService(business.ApprovalApproved)
	l := seedLead(t, repo, nil)

	got, err := svc.Assign(context.Background(), adminActor, l.ID,
		AssignLeadRequest{BusinessID: businessID})
	require.NoError(t, err)
	require.NotNil(t, got.AssignedBusinessID)
	assert.Equal(t, businessID, *got.AssignedBusinessID)
}

func TestAssignMissingBusinessNotFound(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	l := seedLead(t, repo, nil)

	_, err := svc.Assign(context.Background(), adminActor, l.ID,
		AssignLeadRequest{BusinessID: uuid.New().String()})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

// One bad lead id must not poison the batch.
func TestBulkAssignPartialSuccess(t *testing.T) {
	svc, repo, businessID := newTestService(business.ApprovalApproved)
	first := seedLead(t, repo, nil)
	second := seedLead(t, repo, nil)
	missing := uuid.New().String()

	results, err := svc.BulkAssign(context.Background(), adminActor,
		BulkAssignRequest{
			LeadIDs:    []string{first.ID, missing, second.ID},
			BusinessID: businessID,
		})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Success)

	got, err := repo.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssignedBusinessID)
	assert.Equal(t, businessID, *got.AssignedBusinessID)
}

func TestBulkAssignBadTargetFailsWhole(t *testing.T) {
	svc, repo, businessID := newTestService(business.ApprovalRejected)
	l := seedLead(t, repo, nil)

	_, err := svc.BulkAssign(context.Background(), adminActor,
		BulkAssignRequest{
			LeadIDs:    []string{l.ID},
			BusinessID: businessID,
		})
	assert.ErrorIs(t, err, core.ErrInvalidTransition)

	got, err := repo.GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedBusinessID)
}

func TestListScopesSalesman(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	seedLead(t, repo, &salesmanActor.UserID)
	other := uuid.New().String()
	seedLead(t, repo, &other)
	seedLead(t, repo, nil)

	mine, total, err := svc.List(context.Background(), salesmanActor, ListLeadParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, mine, 1)

	_, total, err = svc.List(context.Background(), adminActor, ListLeadParams{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestDeleteAdminOnly(t *testing.T) {
	svc, repo, _ := newTestService(business.ApprovalApproved)
	l := seedLead(t, repo, &salesmanActor.UserID)

	err := svc.Delete(context.Background(), salesmanActor, l.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(context.Background(), adminActor, l.ID)
	assert.NoError(t, err)
}
