// Package vault reads provider credentials from a HashiCorp Vault KV v2 mount.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// ErrSecretNotFound is returned when the path or field does not exist.
var ErrSecretNotFound = errors.New("vault: secret not found")

type SecretManager struct {
	client *api.Client
	mount  string
}

func NewSecretManager(address, token, mount string) (*SecretManager, error) {
	config := api.DefaultConfig()
	if config.Error != nil {
		return nil, config.Error
	}
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	if mount == "" {
		mount = "secret"
	}
	return &SecretManager{client: client, mount: mount}, nil
}

// GetDatabaseURL reads the connection string stored at <mount>/data/database.
func (sm *SecretManager) GetDatabaseURL(ctx context.Context) (string, error) {
	return sm.readField(ctx, "database", "connection_string")
}

// GetLLMAPIKey reads the API key stored at <mount>/data/llm.
func (sm *SecretManager) GetLLMAPIKey(ctx context.Context) (string, error) {
	return sm.readField(ctx, "llm", "api_key")
}

func (sm *SecretManager) readField(ctx context.Context, name, field string) (string, error) {
	path := fmt.Sprintf("%s/data/%s", sm.mount, name)
	secret, err := sm.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, path)
	}
	value, ok := data[field].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s#%s", ErrSecretNotFound, path, field)
	}
	return value, nil
}
