package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var bcryptCost = bcrypt.DefaultCost

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)

var compareHash = bcrypt.CompareHashAndPassword

var (
	decoyOnce sync.Once
	decoyUser models.User
)

// decoy is compared against for unknown emails so sign-in costs one bcrypt round either way.
func decoy() *models.User {
	decoyOnce.Do(func() {
		hash, err := HashPassword("decoy", "decoy")
		if err != nil {
			hash = "$2a$10$" + strings.Repeat(".", 53)
		}
		decoyUser = models.User{Password: hash, Salt: "decoy"}
	})
	return &decoyUser
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// saltedDigest keeps the bcrypt input under its 72 byte limit whatever the password length.
func saltedDigest(password, salt string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}

func HashPassword(password, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(saltedDigest(password, salt), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func ValidatePassword(user *models.User, password string) bool {
	return compareHash([]byte(user.Password), saltedDigest(password, user.Salt)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newCredentials(password string) (hash string, salt string, err error) {
	salt, err = utils.GenerateCode(16)
	if err != nil {
		return "", "", err
	}
	hash, err = HashPassword(password, salt)
	if err != nil {
		return "", "", err
	}
	return hash, salt, nil
}

func (s *UserService) CreateUser(ctx context.Context, dto models.CreateUserDTO) (*models.User, error) {
	email := normalizeEmail(dto.Email)

	hash, salt, err := newCredentials(dto.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    email,
		Password: hash,
		Salt:     salt,
		Role:     models.RoleUser,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, email)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email already registered", ErrPreconditionFailed)
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email already registered", ErrPreconditionFailed)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func emailTaken(tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ValidateUserPassword returns the account email when the credentials match.
// Unknown emails and wrong passwords produce the same error.
func (s *UserService) ValidateUserPassword(ctx context.Context, dto models.LoginDTO) (string, error) {
	user, err := s.FetchByEmail(ctx, dto.Email)
	if errors.Is(err, ErrNotFound) {
		ValidatePassword(decoy(), dto.Password)
		return "", errInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !ValidatePassword(user, dto.Password) {
		return "", errInvalidCredentials
	}
	return user.Email, nil
}

func (s *UserService) ChangePassword(ctx context.Context, user *models.User, dto models.ChangePasswordDTO) (string, error) {
	if !ValidatePassword(user, dto.CurrentPassword) {
		return "", fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
	}

	hash, salt, err := newCredentials(dto.NewPassword)
	if err != nil {
		return "", err
	}

	err = s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"password": hash, "salt": salt}).Error
	if err != nil {
		return "", err
	}

	user.Password = hash
	user.Salt = salt
	return hash, nil
}

func (s *UserService) ChangeEmail(ctx context.Context, user *models.User, dto models.ChangeEmailDTO) (string, error) {
	if normalizeEmail(dto.CurrentEmail) != user.Email {
		return "", fmt.Errorf("%w: current email does not match", ErrUnauthorized)
	}

	newEmail := normalizeEmail(dto.NewEmail)
	if newEmail == user.Email {
		return newEmail, nil
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, newEmail)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: email already registered", ErrPreconditionFailed)
		}
		err = tx.Model(&models.User{}).Where("id = ?", user.ID).Update("email", newEmail).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: email already registered", ErrPreconditionFailed)
		}
		return err
	})
	if err != nil {
		return "", err
	}

	user.Email = newEmail
	return newEmail, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	user, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

func (s *UserService) Fetch(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	query := s.DB.WithContext(ctx).Order("registered_at")
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		query = query.Where("email LIKE ?", "%"+normalizeEmail(filter.Search)+"%")
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) FetchByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, lookupError(err, "user %s not found", id)
	}
	return &user, nil
}

func (s *UserService) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	email = normalizeEmail(email)
	if err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, lookupError(err, "user %s not found", email)
	}
	return &user, nil
}

// Remove deletes the account together with its cart. Orders are kept.
func (s *UserService) Remove(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("user_id = ?", id).First(&cart).Error
		switch {
		case err == nil:
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&cart).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("user %s not found", id)
		}
		return nil
	})
}

// RoleOf returns the role stored for the user.
func (s *UserService) RoleOf(ctx context.Context, user *models.User) (models.Role, error) {
	fresh, err := s.FetchByID(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return fresh.Role, nil
}
