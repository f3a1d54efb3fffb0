package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gymtrack/gymtrack-backend/internal/config"
	"github.com/gymtrack/gymtrack-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("username or email already exists")
	ErrAccountNotFound    = errors.New("account not found")
)

// Actor is the authenticated identity resolved from session state.
type Actor struct {
	ID       string
	Role     string
	Username string
}

func (a Actor) IsOwner() bool { return a.Role == models.RoleOwner }

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login looks the account up by username or email within the collection
// named by userType and verifies the password. Failures are never
// distinguished: a missing account and a bad password both return
// ErrInvalidCredentials.
func (s *AuthService) Login(username, password, userType string) (*models.Account, error) {
	var acct models.Account

	if userType == models.RoleOwner {
		var owner models.Owner
		if err := s.byUsernameOrEmail(&owner, username); err != nil {
			return nil, err
		}
		acct = owner.Account
	} else {
		var user models.User
		if err := s.byUsernameOrEmail(&user, username); err != nil {
			return nil, err
		}
		acct = user.Account
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &acct, nil
}

func (s *AuthService) byUsernameOrEmail(dest interface{}, username string) error {
	err := s.db.Where("username = ? OR email = ?", username, username).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("look up account: %w", err)
	}
	return nil
}

// Register creates a member or owner account. Username and email must be
// unique across both collections. The new account is not logged in.
func (s *AuthService) Register(name, username, email, password, userType string) error {
	taken, err := s.identityTaken(username, email)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if name == "" {
		name = username
	}

	acct := models.Account{
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     name,
	}

	if userType == models.RoleOwner {
		acct.ID = models.NewID(models.RoleOwner)
		err = s.db.Create(&models.Owner{Account: acct}).Error
	} else {
		acct.ID = models.NewID(models.RoleUser)
		err = s.db.Create(&models.User{Account: acct}).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAccount
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *AuthService) identityTaken(username, email string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("check users: %w", err)
	}
	if n > 0 {
		return true, nil
	}
	if err := s.db.Model(&models.Owner{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("check owners: %w", err)
	}
	return n > 0, nil
}

// CurrentUser resolves a session's id and role back to a live record.
// Sessions referencing a since-deleted account get ErrAccountNotFound.
func (s *AuthService) CurrentUser(userID, userType string) (*models.Account, error) {
	var (
		acct models.Account
		err  error
	)
	if userType == models.RoleOwner {
		var owner models.Owner
		err = s.db.First(&owner, "id = ?", userID).Error
		acct = owner.Account
	} else {
		var user models.User
		err = s.db.First(&user, "id = ?", userID).Error
		acct = user.Account
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve current user: %w", err)
	}
	return &acct, nil
}

// EnsureDefaultOwner seeds the configured owner account when the owners
// table is empty, so there is always at least one owner after startup.
func (s *AuthService) EnsureDefaultOwner(cfg *config.Config) error {
	var n int64
	if err := s.db.Model(&models.Owner{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count owners: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedOwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	owner := models.Owner{Account: models.Account{
		ID:       "owner1",
		Username: cfg.SeedOwnerUsername,
		Email:    cfg.SeedOwnerEmail,
		Password: string(hash),
		Name:     cfg.SeedOwnerName,
	}}
	if err := s.db.Create(&owner).Error; err != nil {
		return fmt.Errorf("seed default owner: %w", err)
	}

	slog.Info("default owner created", "username", owner.Username)
	return nil
}
