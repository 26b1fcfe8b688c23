package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/fortuna/internal/models"
	"github.com/terraincognita07/fortuna/internal/security"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCurrentPass = errors.New("invalid current password")
)

type AccountUserRepository interface {
	CountUsers() (int64, error)
	FindByID(userID uint) (models.User, error)
	FindByUsername(username string) (models.User, error)
	ExistsByUsername(username string, excludeID uint) (bool, error)
	ExistsByEmail(email string, excludeID uint) (bool, error)
	CreateAssigningRole(user *models.User) error
	UpdateProfile(userID uint, profile models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	UpdateRole(userID uint, role models.Role) error
}

type AccountService struct {
	users    AccountUserRepository
	register sync.Mutex
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users}
}

func (service *AccountService) RequiresInitialSetup() (bool, error) {
	count, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Register validates the input and creates the account. The first account ever
// created becomes an administrator; the decision and the insert share one
// transaction and registrations are serialized within the process.
func (service *AccountService) Register(input RegistrationInput, now time.Time) (models.User, error) {
	profile, err := normalizeProfileInput(input.ProfileInput, now)
	if err != nil {
		return models.User{}, err
	}
	if input.Password != input.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	service.register.Lock()
	defer service.register.Unlock()

	if err := service.ensureIdentityAvailable(profile.Username, profile.Email, 0); err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:            profile.Name,
		Username:        profile.Username,
		Email:           profile.Email,
		PasswordHash:    passwordHash,
		Birthday:        profile.Birthday,
		PersonalityType: profile.PersonalityType,
		CyclicalSign:    CyclicalYearSign(profile.Birthday.Year()),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if err := service.users.CreateAssigningRole(&user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AccountService) Authenticate(username string, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}
	user, err := service.users.FindByUsername(username)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !security.PasswordMatches(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AccountService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// UpdateProfile applies the edit to user and re-derives the cyclical sign from
// the (possibly new) birthday. Fortune cache fields are left untouched.
func (service *AccountService) UpdateProfile(user *models.User, input ProfileInput, now time.Time) error {
	profile, err := normalizeProfileInput(input, now)
	if err != nil {
		return err
	}
	if err := service.ensureIdentityAvailable(profile.Username, profile.Email, user.ID); err != nil {
		return err
	}

	updated := *user
	updated.Name = profile.Name
	updated.Username = profile.Username
	updated.Email = profile.Email
	updated.Birthday = profile.Birthday
	updated.PersonalityType = profile.PersonalityType
	updated.CyclicalSign = CyclicalYearSign(profile.Birthday.Year())
	if err := service.users.UpdateProfile(user.ID, updated); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	*user = updated
	return nil
}

func (service *AccountService) ChangePassword(user *models.User, current string, next string, confirm string) error {
	if !security.PasswordMatches(user.PasswordHash, current) {
		return ErrInvalidCurrentPass
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if err := ValidatePasswordStrength(next); err != nil {
		return err
	}
	passwordHash, err := security.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(user.ID, passwordHash, false); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = false
	return nil
}

// ResetPassword assigns a temporary password that must be changed at the next
// login and returns it in clear text.
func (service *AccountService) ResetPassword(username string) (string, error) {
	user, err := service.users.FindByUsername(username)
	if err != nil {
		return "", fmt.Errorf("user %s not found: %w", strings.TrimSpace(username), err)
	}
	temporary, err := security.TemporaryPassword(12)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := security.HashPassword(temporary)
	if err != nil {
		return "", fmt.Errorf("hash temporary password: %w", err)
	}
	if err := service.users.UpdatePassword(user.ID, passwordHash, true); err != nil {
		return "", fmt.Errorf("update user password: %w", err)
	}
	return temporary, nil
}

// EnsureAdmin creates an administrator with the given credentials when no
// account with that username exists yet, promoting it when other accounts
// already exist. It reports whether one was created.
func (service *AccountService) EnsureAdmin(input RegistrationInput, now time.Time) (bool, error) {
	exists, err := service.users.ExistsByUsername(input.Username, 0)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	user, err := service.Register(input, now)
	if err != nil {
		return false, err
	}
	if !user.IsAdmin() {
		if err := service.users.UpdateRole(user.ID, models.RoleAdmin); err != nil {
			return true, fmt.Errorf("promote %s: %w", user.Username, err)
		}
	}
	return true, nil
}

func (service *AccountService) ensureIdentityAvailable(username string, email string, excludeID uint) error {
	taken, err := service.users.ExistsByUsername(username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	taken, err = service.users.ExistsByEmail(email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}
