package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AnshRaj112/esangrahan-backend/internal/models"
	"github.com/AnshRaj112/esangrahan-backend/internal/query"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"github.com/AnshRaj112/esangrahan-backend/pkg/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var testLog = zap.NewNop()

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.User
	err   error
	saves int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	u.Normalize()
	if err := u.Validate(); err != nil {
		return err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) Save(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	f.saves++
	saved := *u
	saved.Password = existing.Password
	f.byID[u.ID] = saved
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	email = models.NormalizeEmail(email)
	for _, u := range f.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	u, ok := f.byID[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Password = ""
	return &u, nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, models.User{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.byID {
		u.Password = ""
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUsers) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byID)), f.err
}

func (f *fakeUsers) add(name, email string) *models.User {
	u := &models.User{Name: name, Email: email, Password: "secret1", IsAuthenticated: true}
	if err := f.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

type fakeAdmins struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Admin
}

func newFakeAdmins() *fakeAdmins {
	return &fakeAdmins{byID: map[primitive.ObjectID]models.Admin{}}
}

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.Normalize()
	if err := a.Validate(); err != nil {
		return err
	}
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return err
	}
	a.Password = hashed
	a.ID = primitive.NewObjectID()
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAdmins) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email = models.NormalizeEmail(email)
	for _, a := range f.byID {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAdmins) FindByID(_ context.Context, id string) (*models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	a, ok := f.byID[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.Password = ""
	return &a, nil
}

type fakePoints struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.CollectionPoint
	clock time.Time
	err   error
}

func newFakePoints() *fakePoints {
	return &fakePoints{
		byID:  map[primitive.ObjectID]models.CollectionPoint{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakePoints) Create(_ context.Context, cp *models.CollectionPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp.Normalize()
	if err := cp.Validate(); err != nil {
		return err
	}
	f.clock = f.clock.Add(time.Minute)
	cp.ID = primitive.NewObjectID()
	cp.CreatedAt = f.clock
	cp.UpdatedAt = f.clock
	f.byID[cp.ID] = *cp
	return nil
}

func (f *fakePoints) FindByID(_ context.Context, id string) (*models.CollectionPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	cp, ok := f.byID[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cp, nil
}

func (f *fakePoints) Find(_ context.Context, filter query.Filter) ([]models.CollectionPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CollectionPoint{}
	for _, cp := range f.byID {
		cp := cp
		if filter.Match(&cp) {
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePoints) UpdateContent(_ context.Context, cp *models.CollectionPoint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[cp.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp.Normalize()
	if err := cp.Validate(); err != nil {
		return err
	}
	f.clock = f.clock.Add(time.Minute)
	cp.UserID = stored.UserID
	cp.UserName = stored.UserName
	cp.Status = stored.Status
	cp.UpdatedAt = f.clock
	f.byID[cp.ID] = *cp
	return nil
}

func (f *fakePoints) SetStatus(_ context.Context, id string, status models.Status) (*models.CollectionPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	cp, ok := f.byID[oid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp.Status = status
	f.byID[oid] = cp
	return &cp, nil
}

func (f *fakePoints) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePoints) Count(_ context.Context, filter query.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, cp := range f.byID {
		cp := cp
		if filter.Match(&cp) {
			n++
		}
	}
	return n, nil
}

func (f *fakePoints) GroupCount(_ context.Context, field query.Field) ([]models.GroupCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, cp := range f.byID {
		switch field {
		case query.FieldWasteType:
			counts[string(cp.WasteType)]++
		case query.FieldCondition:
			counts[string(cp.Condition)]++
		}
	}
	out := []models.GroupCount{}
	for k, n := range counts {
		out = append(out, models.GroupCount{ID: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakePoints) seed(owner *models.User, name string, waste models.WasteType, status models.Status) *models.CollectionPoint {
	cp := &models.CollectionPoint{
		UserID:     owner.ID,
		UserName:   owner.Name,
		Name:       name,
		Email:      owner.Email,
		Address:    "12 MG Road",
		Latitude:   "12.97",
		Longitude:  "77.59",
		WasteType:  waste,
		Condition:  models.ConditionGood,
		YearsOfUse: 2,
		Status:     status,
	}
	if err := f.Create(context.Background(), cp); err != nil {
		panic(err)
	}
	return cp
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (f *fakeAudit) Record(_ context.Context, e *models.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAudit) Recent(_ context.Context, limit int) ([]models.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}
