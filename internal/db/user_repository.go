package db

import (
	"strings"
	"time"

	"github.com/terraincognita07/fortuna/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) CountUsers() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("lower(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ExistsByUsername ignores the row with excludeID so profile edits can keep
// their own username.
func (repo *UserRepository) ExistsByUsername(username string, excludeID uint) (bool, error) {
	return repo.existsBy("lower(username) = ?", strings.ToLower(strings.TrimSpace(username)), excludeID)
}

func (repo *UserRepository) ExistsByEmail(email string, excludeID uint) (bool, error) {
	return repo.existsBy("lower(email) = ?", strings.ToLower(strings.TrimSpace(email)), excludeID)
}

func (repo *UserRepository) existsBy(condition string, value string, excludeID uint) (bool, error) {
	query := repo.database.Model(&models.User{}).Where(condition, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var matched int64
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateAssigningRole inserts the user inside a transaction that first counts
// existing accounts: an empty table makes the new user an administrator.
func (repo *UserRepository) CreateAssigningRole(user *models.User) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = models.RoleAdmin
		} else {
			user.Role = models.RoleUser
		}
		return tx.Create(user).Error
	})
}

func (repo *UserRepository) UpdateProfile(userID uint, profile models.User) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"name":             profile.Name,
		"username":         profile.Username,
		"email":            profile.Email,
		"birthday":         profile.Birthday,
		"personality_type": profile.PersonalityType,
		"cyclical_sign":    profile.CyclicalSign,
	}).Error
}

func (repo *UserRepository) SaveFortune(userID uint, narrative string, day time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"last_fortune":      narrative,
		"last_fortune_date": models.UTCDay(day),
	}).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *UserRepository) UpdateRole(userID uint, role models.Role) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error
}
