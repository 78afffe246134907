package service

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/mailer"
)

type fakeTx struct {
	mu         sync.Mutex
	commits    int
	rollbacks  int
	onRollback func()
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rollbacks++
		if f.onRollback != nil {
			f.onRollback()
		}
		return err
	}
	f.commits++
	return nil
}

type fakeAggregateRepo struct {
	mu           sync.Mutex
	items        map[models.AggregateKind]map[string]*models.Aggregate
	incrementErr error
	listErr      error
	increments   int
	listCalls    int
}

func newFakeAggregateRepo() *fakeAggregateRepo {
	return &fakeAggregateRepo{items: map[models.AggregateKind]map[string]*models.Aggregate{
		models.AggregateSchool: {},
		models.AggregateField:  {},
	}}
}

func (f *fakeAggregateRepo) Increment(ctx context.Context, kind models.AggregateKind, name string) (*models.Aggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.incrementErr != nil {
		return nil, f.incrementErr
	}
	f.increments++
	agg, ok := f.items[kind][name]
	if !ok {
		agg = &models.Aggregate{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
		f.items[kind][name] = agg
	}
	agg.Count++
	agg.UpdatedAt = time.Now()
	copied := *agg
	return &copied, nil
}

func (f *fakeAggregateRepo) List(ctx context.Context, kind models.AggregateKind, activeOnly bool) ([]models.Aggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Aggregate
	for _, agg := range f.items[kind] {
		if activeOnly && agg.Count == 0 {
			continue
		}
		out = append(out, *agg)
	}
	return out, nil
}

func (f *fakeAggregateRepo) FindByID(ctx context.Context, kind models.AggregateKind, id string) (*models.Aggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, agg := range f.items[kind] {
		if agg.ID == id {
			copied := *agg
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAggregateRepo) count(kind models.AggregateKind, name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if agg, ok := f.items[kind][name]; ok {
		return agg.Count
	}
	return 0
}

type fakeMOURepo struct {
	mu        sync.Mutex
	mous      []models.MOU
	createErr error
}

func (f *fakeMOURepo) List(ctx context.Context) ([]models.MOU, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MOU(nil), f.mous...), nil
}

func (f *fakeMOURepo) ListByPartner(ctx context.Context, partner string) ([]models.MOU, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.MOU
	for _, m := range f.mous {
		if m.NameOfPartnerInstitution == partner {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMOURepo) ExistsByMOUID(ctx context.Context, mouID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.mous {
		if m.MOUID == mouID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMOURepo) Create(ctx context.Context, mou *models.MOU) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.mous = append(f.mous, *mou)
	return nil
}

type fakeCourseRepo struct {
	courses   []models.Course
	createErr error
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) ListByCompletion(ctx context.Context, completed models.CourseCompletion) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.Completed == completed {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListByField(ctx context.Context, field string) ([]models.Course, error) {
	var out []models.Course
	for _, c := range f.courses {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ExistsByCourseID(ctx context.Context, courseID string) (bool, error) {
	for _, c := range f.courses {
		if c.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.courses = append(f.courses, *course)
	return nil
}

type fakeCandidateRepo struct {
	candidates []models.Candidate
	createErr  error
}

func (f *fakeCandidateRepo) List(ctx context.Context) ([]models.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeCandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, c := range f.candidates {
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCandidateRepo) Create(ctx context.Context, candidate *models.Candidate) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.candidates = append(f.candidates, *candidate)
	return nil
}

type fakeAdminRepo struct {
	mu        sync.Mutex
	admins    map[string]*models.Admin
	pending   map[string]*models.PendingAdmin
	findErr   error
	createErr error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*models.Admin{}, pending: map[string]*models.PendingAdmin{}}
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, a := range f.admins {
		if strings.EqualFold(a.Email, email) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	for _, p := range f.pending {
		if strings.EqualFold(p.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdminRepo) CreatePending(ctx context.Context, pending *models.PendingAdmin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pending {
		if strings.EqualFold(p.Email, pending.Email) {
			return repository.ErrDuplicate
		}
	}
	copied := *pending
	f.pending[pending.ID] = &copied
	return nil
}

func (f *fakeAdminRepo) FindPendingForUpdate(ctx context.Context, id string) (*models.PendingAdmin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pending[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f *fakeAdminRepo) UpdatePendingStatus(ctx context.Context, pending *models.PendingAdmin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.pending[pending.ID]
	if !ok || stored.Status != models.RegistrationPending {
		return models.ErrRegistrationProcessed
	}
	copied := *pending
	f.pending[pending.ID] = &copied
	return nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *admin
	f.admins[admin.ID] = &copied
	return nil
}

func (f *fakeAdminRepo) dropPending() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = map[string]*models.PendingAdmin{}
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []*mailer.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg *mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err := msg.Render(); err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCacheRepo struct {
	mu      sync.Mutex
	store   map[string]interface{}
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: map[string]interface{}{}}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.School:
		*d = v.([]models.School)
	case *[]models.Field:
		*d = v.([]models.Field)
	}
	return nil
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = value
	return nil
}

func (f *fakeCacheRepo) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.store, k)
		f.deleted = append(f.deleted, k)
	}
	return nil
}

func statusOf(err error) int {
	return appErrors.FromError(err).Status
}
