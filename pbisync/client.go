package pbisync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/airfinance/finbi_backend/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// RawRow is one untyped row as the ExecuteQueries endpoint returns it: DAX
// column names as keys, JSON scalars as values.
type RawRow = map[string]any

type powerBIClient struct {
	cfg  config.PowerBIConfig
	http *http.Client
}

func newPowerBIClient(cfg config.PowerBIConfig, httpClient *http.Client) *powerBIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &powerBIClient{cfg: cfg, http: httpClient}
}

// token runs the client-credentials grant against Azure AD.
func (c *powerBIClient) token(ctx context.Context) (*oauth2.Token, error) {
	cc := clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.cfg.TokenURL,
		Scopes:       []string{c.cfg.Scope},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return tok, nil
}

type executeQueriesRequest struct {
	Queries            []executeQuery     `json:"queries"`
	SerializerSettings serializerSettings `json:"serializerSettings"`
}

type executeQuery struct {
	Query string `json:"query"`
}

type serializerSettings struct {
	IncludeNulls bool `json:"includeNulls"`
}

type executeQueriesResponse struct {
	Results []struct {
		Tables []struct {
			Rows []RawRow `json:"rows"`
		} `json:"tables"`
	} `json:"results"`
}

// queryTable pulls up to RowLimit rows of one dataset table through a DAX
// TOPN evaluation, nulls included so row shapes stay uniform.
func (c *powerBIClient) queryTable(ctx context.Context, table string) ([]RawRow, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	dax := fmt.Sprintf("EVALUATE TOPN(%d, '%s')", c.cfg.RowLimit, table)
	payload, err := json.Marshal(executeQueriesRequest{
		Queries:            []executeQuery{{Query: dax}},
		SerializerSettings: serializerSettings{IncludeNulls: true},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/groups/%s/datasets/%s/executeQueries",
		c.cfg.APIBaseURL, c.cfg.WorkspaceID, c.cfg.DatasetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("power bi query error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed executeQueriesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("power bi response decode failed: %w", err)
	}

	var rows []RawRow
	for _, result := range parsed.Results {
		for _, t := range result.Tables {
			rows = append(rows, t.Rows...)
		}
	}
	return rows, nil
}
