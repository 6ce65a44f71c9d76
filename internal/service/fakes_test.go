package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/femcoders/pettrack/internal/domain"
	"github.com/femcoders/pettrack/internal/events"
	"github.com/femcoders/pettrack/internal/repository"
	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// -------------------------
// In-memory fakes
// -------------------------

type fakeUserRepo struct {
	byID    map[int64]*domain.User
	nextID  int64
	saves   int
	deletes int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byID: map[int64]*domain.User{}}
	for _, u := range users {
		if u.ID == 0 {
			repo.nextID++
			u.ID = repo.nextID
		} else if u.ID > repo.nextID {
			repo.nextID = u.ID
		}
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.saves++
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.saves++
	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.byID {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byID {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	users := []domain.User{}
	for _, user := range r.byID {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		users = append(users, *user)
	}
	return users, nil
}

type fakePetRepo struct {
	byID    map[int64]*domain.Pet
	nextID  int64
	saves   int
	deletes int
}

func newFakePetRepo(pets ...*domain.Pet) *fakePetRepo {
	repo := &fakePetRepo{byID: map[int64]*domain.Pet{}}
	for _, p := range pets {
		if p.ID == 0 {
			repo.nextID++
			p.ID = repo.nextID
		} else if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
		repo.byID[p.ID] = p
	}
	return repo
}

func (r *fakePetRepo) Create(_ context.Context, pet *domain.Pet) error {
	r.saves++
	r.nextID++
	pet.ID = r.nextID
	copied := *pet
	r.byID[pet.ID] = &copied
	return nil
}

func (r *fakePetRepo) Update(_ context.Context, pet *domain.Pet) error {
	r.saves++
	if _, ok := r.byID[pet.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *pet
	r.byID[pet.ID] = &copied
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakePetRepo) GetByID(_ context.Context, id int64) (*domain.Pet, error) {
	pet, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *pet
	return &copied, nil
}

// List mirrors the repository contract: blank fields are omitted, non-blank
// fields match as case-insensitive substrings.
func (r *fakePetRepo) List(_ context.Context, filter repository.PetFilter) ([]domain.Pet, error) {
	matches := func(value, needle string) bool {
		needle = strings.TrimSpace(needle)
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
	}
	pets := []domain.Pet{}
	for _, pet := range r.byID {
		if matches(pet.Name, filter.Name) && matches(pet.Species, filter.Species) && matches(pet.Breed, filter.Breed) {
			pets = append(pets, *pet)
		}
	}
	return pets, nil
}

type fakeRecordRepo struct {
	byID    map[int64]*domain.MedicalRecord
	nextID  int64
	saves   int
	deletes int
}

func newFakeRecordRepo(records ...*domain.MedicalRecord) *fakeRecordRepo {
	repo := &fakeRecordRepo{byID: map[int64]*domain.MedicalRecord{}}
	for _, rec := range records {
		if rec.ID == 0 {
			repo.nextID++
			rec.ID = repo.nextID
		} else if rec.ID > repo.nextID {
			repo.nextID = rec.ID
		}
		repo.byID[rec.ID] = rec
	}
	return repo
}

func (r *fakeRecordRepo) Create(_ context.Context, record *domain.MedicalRecord) error {
	r.saves++
	r.nextID++
	record.ID = r.nextID
	copied := *record
	r.byID[record.ID] = &copied
	return nil
}

func (r *fakeRecordRepo) Update(_ context.Context, record *domain.MedicalRecord) error {
	r.saves++
	if _, ok := r.byID[record.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *record
	r.byID[record.ID] = &copied
	return nil
}

func (r *fakeRecordRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRecordRepo) GetByID(_ context.Context, id int64) (*domain.MedicalRecord, error) {
	record, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *record
	return &copied, nil
}

func (r *fakeRecordRepo) ListAll(_ context.Context) ([]domain.MedicalRecord, error) {
	records := []domain.MedicalRecord{}
	for _, record := range r.byID {
		records = append(records, *record)
	}
	return records, nil
}

func (r *fakeRecordRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.MedicalRecord, error) {
	records := []domain.MedicalRecord{}
	for _, record := range r.byID {
		if record.OwnerID == ownerID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (r *fakeRecordRepo) ListByPetName(_ context.Context, petName string) ([]domain.MedicalRecord, error) {
	records := []domain.MedicalRecord{}
	for _, record := range r.byID {
		if strings.EqualFold(record.PetName, petName) {
			records = append(records, *record)
		}
	}
	return records, nil
}

// -------------------------
// Shared fixtures
// -------------------------

func veterinarian(id int64, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Email: username + "@clinic.test", Role: domain.RoleVeterinary}
}

func owner(id int64, username string) *domain.User {
	return &domain.User{ID: id, Username: username, Email: username + "@user.com", Role: domain.RoleUser}
}

type spyDispatcher struct {
	published []events.Event
}

func (d *spyDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *spyDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func errCode(err error) string {
	if err == nil {
		return ""
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "UNMAPPED"
}
