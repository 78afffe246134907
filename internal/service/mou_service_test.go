package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
)

type mouFixture struct {
	svc        *MOUService
	repo       *fakeMOURepo
	aggregates *fakeAggregateRepo
	tx         *fakeTx
	cache      *fakeCacheRepo
}

func newMOUFixture() *mouFixture {
	repo := &fakeMOURepo{}
	aggregates := newFakeAggregateRepo()
	tx := &fakeTx{}
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	svc := NewMOUService(repo, NewCounterService(aggregates, nil, nil), tx, cache, nil, "/api")
	return &mouFixture{svc: svc, repo: repo, aggregates: aggregates, tx: tx, cache: cacheRepo}
}

func TestCreateMOUMaintainsSchoolCount(t *testing.T) {
	f := newMOUFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, models.CreateMOURequest{ID: "M1", NameOfPartnerInstitution: "Acme U", StrategicAreas: "AI"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.School.Count)
	assert.Equal(t, "/api/schools/"+first.School.ID, first.School.Link)

	_, err = f.svc.Create(ctx, models.CreateMOURequest{ID: "M1", NameOfPartnerInstitution: "Acme U", StrategicAreas: "AI"})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, 1, f.aggregates.count(models.AggregateSchool, "Acme U"))

	third, err := f.svc.Create(ctx, models.CreateMOURequest{ID: "M2", NameOfPartnerInstitution: " Acme U ", StrategicAreas: "Robotics"})
	require.NoError(t, err)
	assert.Equal(t, 2, third.School.Count)
	assert.Equal(t, "Acme U", third.MOU.NameOfPartnerInstitution)
	assert.Contains(t, f.cache.deleted, CacheKeyActiveSchools)
}

func TestCreateMOURequiresAllFields(t *testing.T) {
	f := newMOUFixture()
	_, err := f.svc.Create(context.Background(), models.CreateMOURequest{ID: "M1", NameOfPartnerInstitution: "  "})
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Zero(t, f.aggregates.increments)
	assert.Zero(t, f.tx.commits+f.tx.rollbacks)
}

func TestCreateMOUDuplicateAtInsertRollsBack(t *testing.T) {
	f := newMOUFixture()
	f.repo.createErr = repository.ErrDuplicate

	_, err := f.svc.Create(context.Background(), models.CreateMOURequest{ID: "M9", NameOfPartnerInstitution: "Acme U", StrategicAreas: "AI"})
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestCreateMOUStoreFailure(t *testing.T) {
	f := newMOUFixture()
	f.repo.createErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), models.CreateMOURequest{ID: "M9", NameOfPartnerInstitution: "Acme U", StrategicAreas: "AI"})
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
}

func TestListMOUsNeverNil(t *testing.T) {
	f := newMOUFixture()
	mous, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, mous)
	assert.Empty(t, mous)
}
