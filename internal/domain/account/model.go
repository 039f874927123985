package account

import (
	"fmt"
	"strings"
)

// Account is a registered pick'em player.
type Account struct {
	ID        int64
	PublicID  string
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// Principal identifies the caller of an authenticated request.
type Principal struct {
	Subject  string
	Username string
	Email    string
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("account username is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("account email is required")
	}

	return nil
}

func (a Account) DisplayName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Username
	}

	return name
}
