package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
	"gorm.io/gorm"
)

// RunResetPassword assigns a temporary password to the account and prints it.
// The user has to choose a new password at the next login.
func RunResetPassword(database *gorm.DB, username string, out io.Writer) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}

	accounts := services.NewAccountService(db.NewUserRepository(database))
	temporaryPassword, err := accounts.ResetPassword(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", username)
		}
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
