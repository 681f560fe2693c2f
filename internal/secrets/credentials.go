package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "leadboard"

// KeyringAccount names the slot holding the service-account key for one
// spreadsheet.
func KeyringAccount(spreadsheetID string) string {
	return "leadboard:sheets:" + spreadsheetID
}

// GetServiceAccountJSON returns the service-account key stored in the
// keychain, if any.
func GetServiceAccountJSON(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	v, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", errors.New("service-account key not found in keychain")
	}
	return v, nil
}

func SetServiceAccountJSON(account string, credentialsJSON string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(credentialsJSON) == "" {
		return errors.New("credentials are empty")
	}
	return keyring.Set(KeyringService, account, credentialsJSON)
}

func DeleteServiceAccountJSON(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
