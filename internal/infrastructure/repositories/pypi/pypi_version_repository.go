package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

type projectResponse struct {
	Releases map[string]json.RawMessage `json:"releases"`
}

// VersionRepository lists package releases through the PyPI JSON API.
type VersionRepository struct {
	client  *http.Client
	baseURL string
}

// NewVersionRepository creates a PyPI version source from settings.
func NewVersionRepository(settings *entities.Settings) repositories.VersionRepository {
	return &VersionRepository{
		client:  &http.Client{Timeout: settings.HTTPTimeout},
		baseURL: strings.TrimRight(settings.PypiURL, "/"),
	}
}

func (r *VersionRepository) Kind() entities.ComponentKind { return entities.KindPypi }

// FetchVersions returns the release keys of the package. An unknown
// package has no releases rather than failing the whole check.
func (r *VersionRepository) FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error) {
	logger.Infof("[pypi] %s - NOT CACHED", key.Name)

	endpoint := fmt.Sprintf("%s/pypi/%s/json", r.baseURL, url.PathEscape(key.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch releases of %s: %w", entities.ErrRemoteFetch, key.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		logger.Warnf("[pypi] package %s does not exist", key.Name)
		return []string{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w: failed to fetch releases of %s: status %d",
			entities.ErrRemoteFetch, key.Name, resp.StatusCode,
		)
	}

	var body projectResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to parse releases of %s: %w", entities.ErrRemoteFetch, key.Name, decodeErr)
	}

	versions := make([]string, 0, len(body.Releases))
	for version := range body.Releases {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions, nil
}
