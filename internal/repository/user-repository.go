package repository

import (
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/interfaces"
)

// ErrDuplicateEmail is returned by CreateUser when the email unique index
// rejects the insert. Uniqueness is enforced here by the database, not by a
// check-then-write in the caller, so two concurrent registrations with the
// same email cannot both succeed.
var ErrDuplicateEmail = errors.New("email already exists")

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	FindUserByVerificationTokenHash(hash string) (*domain.User, error)
	SaveUser(user *domain.User) error
}

type userRepository struct {
	db     *gorm.DB
	hasher interfaces.PasswordHasher
}

func NewUserRepository(db *gorm.DB, hasher interfaces.PasswordHasher) UserRepository {
	return &userRepository{db: db, hasher: hasher}
}

// PrepareForWrite hashes a staged plaintext password before the record hits
// the database. No-op unless SetPassword was called since the last write, so
// saves that don't touch the password never re-hash the stored digest.
func PrepareForWrite(user *domain.User, hasher interfaces.PasswordHasher) error {
	plain, dirty := user.PendingPassword()
	if !dirty {
		return nil
	}
	hash, err := hasher.HashPassword(plain)
	if err != nil {
		return err
	}
	user.ApplyPasswordHash(hash)
	return nil
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := PrepareForWrite(user, r.hasher); err != nil {
		return nil, err
	}

	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		log.Printf("create user error: %v", err)
		return nil, errors.New("failed to create user")
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByVerificationTokenHash(hash string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.Where("verification_token = ?", hash).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := PrepareForWrite(user, r.hasher); err != nil {
		return err
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return errors.New("failed to save user")
	}
	return nil
}

// 23505 = unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
