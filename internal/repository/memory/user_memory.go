package memory

import (
	"context"
	"sync"

	"github.com/cloudpeak/authgate/internal/models"
	"github.com/cloudpeak/authgate/internal/repository"
)

var _ repository.UserRepository = (*MemoryUserRepository)(nil)

// MemoryUserRepository is an in-memory UserRepository for tests and local
// development. The mutex gives CreateUser the same atomic insert-if-absent
// semantics the DynamoDB conditional write provides.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemoryUserRepository creates a new MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return repository.ErrUserExists
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) GetUser(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) MarkVerified(ctx context.Context, email, verifyToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists || user.VerifyToken != verifyToken {
		return repository.ErrVerifyTokenMismatch
	}
	user.Verified = true
	r.users[email] = user
	return nil
}
