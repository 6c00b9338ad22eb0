package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ACCOUNT_UUID", "00000000-0000-4000-0000-000000000001")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/mailstore", cfg.StoragePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []AccountConfig{{UUID: "00000000-0000-4000-0000-000000000001", Name: "default"}}, cfg.Accounts)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_NumberedAccounts(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/stores")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ACCOUNT_1_UUID", "00000000-0000-4000-0000-000000000001")
	t.Setenv("ACCOUNT_1_NAME", "Work")
	t.Setenv("ACCOUNT_2_UUID", "00000000-0000-4000-0000-000000000002")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/stores", cfg.StoragePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []AccountConfig{
		{UUID: "00000000-0000-4000-0000-000000000001", Name: "Work"},
		{UUID: "00000000-0000-4000-0000-000000000002", Name: "account-2"},
	}, cfg.Accounts)
}

func TestLoadConfig_NoAccounts(t *testing.T) {
	t.Setenv("ACCOUNT_UUID", "")
	t.Setenv("ACCOUNT_1_UUID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{StoragePath: "/data", Accounts: []AccountConfig{
				{UUID: "00000000-0000-4000-0000-000000000001", Name: "a"},
			}},
		},
		{
			name:    "missing storage path",
			cfg:     Config{Accounts: []AccountConfig{{UUID: "00000000-0000-4000-0000-000000000001"}}},
			wantErr: true,
		},
		{
			name:    "no accounts",
			cfg:     Config{StoragePath: "/data"},
			wantErr: true,
		},
		{
			name:    "invalid uuid",
			cfg:     Config{StoragePath: "/data", Accounts: []AccountConfig{{UUID: "abc", Name: "a"}}},
			wantErr: true,
		},
		{
			name: "duplicate uuid",
			cfg: Config{StoragePath: "/data", Accounts: []AccountConfig{
				{UUID: "00000000-0000-4000-0000-000000000001", Name: "a"},
				{UUID: "00000000-0000-4000-0000-000000000001", Name: "b"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
