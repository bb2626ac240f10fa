package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/nazarov/footballmanager/internal/domain/entity"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	nextID      int64
	createCalls int
	failWith    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.failWith != nil {
		return r.failWith
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdateProfilePicture(ctx context.Context, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.ProfilePictureURL = url
			return nil
		}
	}
	return nil
}

// fakeRoleRepo serves a fixed role set.
type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[string]*entity.Role{}}
	for i, n := range names {
		r.roles[n] = &entity.Role{ID: int64(i + 1), Name: n}
	}
	return r
}

func (r *fakeRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.roles[name], nil
}

// fakeHasher makes hashing observable and cheap.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Matches(plain, hash string) bool   { return hash == "hashed:"+plain }
