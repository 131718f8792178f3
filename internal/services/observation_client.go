package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sharklandy/deapsea-project/internal/models"
)

// ObservationClient reads the observation catalog over its internal HTTP
// contract. The taxonomy aggregator never touches the catalog's database.
type ObservationClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewObservationClient(baseURL string) *ObservationClient {
	return &ObservationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *ObservationClient) ListSpecies(ctx context.Context) ([]models.Species, error) {
	var list []models.Species
	if err := c.get(ctx, "/species", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ObservationClient) ListSpeciesObservations(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error) {
	var list []models.Observation
	if err := c.get(ctx, fmt.Sprintf("/species/%s/observations", speciesID.String()), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ObservationClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("observation service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("observation service returned %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
