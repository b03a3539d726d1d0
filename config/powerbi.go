package config

import (
	"fmt"
	"os"
	"strings"
)

// PowerBIConfig holds everything needed to authenticate against Azure AD with
// the client-credentials grant and run DAX queries against one dataset.
type PowerBIConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	WorkspaceID  string
	DatasetID    string
	Scope        string

	// Source table names inside the dataset.
	PayablesTable    string
	ReceivablesTable string

	// Endpoints are overridable for tests and sovereign-cloud deployments.
	TokenURL   string
	APIBaseURL string

	RowLimit int
}

func LoadPowerBIConfig() PowerBIConfig {
	cfg := PowerBIConfig{
		TenantID:         strings.TrimSpace(os.Getenv("PBI_TENANT_ID")),
		ClientID:         strings.TrimSpace(os.Getenv("PBI_CLIENT_ID")),
		ClientSecret:     strings.TrimSpace(os.Getenv("PBI_CLIENT_SECRET")),
		WorkspaceID:      strings.TrimSpace(os.Getenv("PBI_WORKSPACE_ID")),
		DatasetID:        strings.TrimSpace(os.Getenv("PBI_DATASET_ID")),
		Scope:            strings.TrimSpace(os.Getenv("PBI_SCOPE")),
		PayablesTable:    strings.TrimSpace(os.Getenv("PBI_PAYABLES_TABLE")),
		ReceivablesTable: strings.TrimSpace(os.Getenv("PBI_RECEIVABLES_TABLE")),
		TokenURL:         strings.TrimSpace(os.Getenv("PBI_TOKEN_URL")),
		APIBaseURL:       strings.TrimSpace(os.Getenv("PBI_API_BASE_URL")),
		RowLimit:         intFromEnv("PBI_ROW_LIMIT", 10000),
	}

	if cfg.Scope == "" {
		cfg.Scope = "https://analysis.windows.net/powerbi/api/.default"
	}
	if cfg.PayablesTable == "" {
		cfg.PayablesTable = "REL_FINANCEIRO"
	}
	if cfg.ReceivablesTable == "" {
		cfg.ReceivablesTable = "REL_RECEBER"
	}
	if cfg.TokenURL == "" && cfg.TenantID != "" {
		cfg.TokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.powerbi.com/v1.0/myorg"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg
}

// Configured reports whether the client-credential inputs are all present.
func (c PowerBIConfig) Configured() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != "" &&
		c.WorkspaceID != "" && c.DatasetID != ""
}
