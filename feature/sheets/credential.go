package sheets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCredential is returned for malformed service-account JSON.
var ErrInvalidCredential = errors.New("invalid service account credential")

// Credential is the subset of a service-account key file the service checks.
type Credential struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// ParseCredential validates a service-account key file.
func ParseCredential(raw []byte) (*Credential, error) {
	var c Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if c.Type != "service_account" {
		return nil, fmt.Errorf("%w: type must be service_account", ErrInvalidCredential)
	}
	if c.ClientEmail == "" || c.PrivateKey == "" {
		return nil, fmt.Errorf("%w: client_email and private_key are required", ErrInvalidCredential)
	}
	return &c, nil
}

func fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
