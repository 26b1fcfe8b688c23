package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/fortuna/internal/config"
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/seed"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunSeed replaces the personality traits and yearly forecasts with the
// catalog contents. When admin is complete an administrator account is
// created unless one with that username already exists.
func RunSeed(database *gorm.DB, catalog seed.Catalog, admin config.AdminConfig, now time.Time, logger *zap.Logger, out io.Writer) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	result, err := seed.Apply(db.NewReferenceRepository(database), catalog, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Seeded %d personality traits and %d yearly forecasts\n", result.Traits, result.Forecasts)

	if !admin.Complete() {
		return nil
	}

	accounts := services.NewAccountService(db.NewUserRepository(database))
	created, err := accounts.EnsureAdmin(adminRegistration(admin), now)
	if err != nil {
		return fmt.Errorf("create admin %s: %w", admin.Username, err)
	}
	if created {
		logger.Info("admin account created", zap.String("username", admin.Username))
		fmt.Fprintf(out, "Admin account %s created\n", admin.Username)
	} else {
		fmt.Fprintf(out, "Admin account %s already exists\n", admin.Username)
	}
	return nil
}

func adminRegistration(admin config.AdminConfig) services.RegistrationInput {
	return services.RegistrationInput{
		ProfileInput: services.ProfileInput{
			Name:            admin.Name,
			Username:        admin.Username,
			Email:           admin.Email,
			Birthday:        admin.Birthday,
			PersonalityType: admin.PersonalityType,
		},
		Password:        admin.Password,
		ConfirmPassword: admin.Password,
	}
}
