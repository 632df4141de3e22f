package services_test

import (
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/interfaces"
	"github.com/askfield/user_service/internal/repository"
)

// memoryUserRepository is an in-memory stand-in for the gorm store. Like the
// real one it enforces email uniqueness itself and runs the prepare-for-write
// password hashing on every create/save.
type memoryUserRepository struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]domain.User
	hasher interfaces.PasswordHasher

	saveErr error
}

func newMemoryUserRepository(hasher interfaces.PasswordHasher) *memoryUserRepository {
	return &memoryUserRepository{
		nextID: 1,
		users:  make(map[uint]domain.User),
		hasher: hasher,
	}
}

func (r *memoryUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, repository.ErrDuplicateEmail
		}
	}

	if err := repository.PrepareForWrite(user, r.hasher); err != nil {
		return nil, err
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) FindUserById(userID uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := u
	return &found, nil
}

func (r *memoryUserRepository) FindUserByVerificationTokenHash(hash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.VerificationToken != "" && u.VerificationToken == hash {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryUserRepository) SaveUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return r.saveErr
	}

	if err := repository.PrepareForWrite(user, r.hasher); err != nil {
		return err
	}

	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) deleteUser(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

type publishedMessage struct {
	Key   string
	Value string
}

// recordingProducer captures published events; set failErr to simulate a
// broker outage.
type recordingProducer struct {
	mu       sync.Mutex
	messages []publishedMessage
	failErr  error
}

func (p *recordingProducer) PublishMessage(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failErr != nil {
		return p.failErr
	}
	p.messages = append(p.messages, publishedMessage{Key: string(key), Value: string(value)})
	return nil
}

func (p *recordingProducer) published() []publishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedMessage, len(p.messages))
	copy(out, p.messages)
	return out
}
