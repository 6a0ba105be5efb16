// Package keyring keeps secrets, such as the postgres connection string, in
// the OS credential store under the "wellness" service.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/wellness/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored for an account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// ConnectionAccount is the account holding the database connection string
const ConnectionAccount = constants.DefaultKeyringUser

const checkAccount = "availability-check"

// Get returns the secret stored for account
func Get(account string) (string, error) {
	v, err := keyring.Get(constants.AppName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Set stores value for account, replacing any previous secret
func Set(account, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the secret stored for account
func Delete(account string) error {
	err := keyring.Delete(constants.AppName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString returns the stored postgres connection string
func GetConnectionString() (string, error) {
	return Get(ConnectionAccount)
}

// SetConnectionString stores the postgres connection string
func SetConnectionString(connStr string) error {
	return Set(ConnectionAccount, connStr)
}

// DeleteConnectionString removes the postgres connection string
func DeleteConnectionString() error {
	return Delete(ConnectionAccount)
}

// IsAvailable reports whether the OS keyring answers a read. Best effort.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, checkAccount)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
