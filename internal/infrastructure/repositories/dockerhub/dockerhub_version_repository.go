package dockerhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/componentupdate/internal/domain/entities"
	"github.com/rios0rios0/componentupdate/internal/domain/repositories"
)

// maxTagPages stops following pagination links on a misbehaving registry.
const maxTagPages = 100

type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

type tagsResponse struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// VersionRepository lists container image tags through the Docker Registry
// HTTP API, authenticating with an anonymous pull token.
type VersionRepository struct {
	client      *http.Client
	authURL     string
	registryURL string
	service     string
}

// NewVersionRepository creates a Docker Hub version source from settings.
func NewVersionRepository(settings *entities.Settings) repositories.VersionRepository {
	return &VersionRepository{
		client:      &http.Client{Timeout: settings.HTTPTimeout},
		authURL:     settings.DockerAuthURL,
		registryURL: strings.TrimRight(settings.DockerRegistryURL, "/"),
		service:     settings.DockerService,
	}
}

func (r *VersionRepository) Kind() entities.ComponentKind { return entities.KindDockerImage }

// FetchVersions returns every tag of repository/name in registry order.
func (r *VersionRepository) FetchVersions(ctx context.Context, key entities.VersionKey) ([]string, error) {
	image := key.Repository + "/" + key.Name
	logger.Infof("[dockerhub] %s - NOT CACHED", image)

	token, err := r.fetchToken(ctx, image)
	if err != nil {
		return nil, err
	}

	var tags []string
	next := fmt.Sprintf("%s/v2/%s/tags/list", r.registryURL, image)
	for page := 0; next != "" && page < maxTagPages; page++ {
		var pageTags []string
		pageTags, next, err = r.fetchTagPage(ctx, next, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags of %s: %w", image, err)
		}
		tags = append(tags, pageTags...)
	}
	logger.Debugf("[dockerhub] %s: %d tags", image, len(tags))
	return tags, nil
}

func (r *VersionRepository) fetchToken(ctx context.Context, image string) (string, error) {
	query := url.Values{}
	query.Set("service", r.service)
	query.Set("scope", fmt.Sprintf("repository:%s:pull", image))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.authURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: could not get auth token for %s: %w", entities.ErrRemoteFetch, image, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"%w: could not get auth token for %s: status %d",
			entities.ErrRemoteFetch, image, resp.StatusCode,
		)
	}

	var body tokenResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return "", fmt.Errorf("%w: failed to parse auth token: %w", entities.ErrRemoteFetch, decodeErr)
	}
	if body.Token != "" {
		return body.Token, nil
	}
	return body.AccessToken, nil
}

// fetchTagPage returns the tags of one page and the absolute URL of the
// next page, if the registry announced one.
func (r *VersionRepository) fetchTagPage(ctx context.Context, pageURL, token string) ([]string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", entities.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: unexpected status code: %d", entities.ErrRemoteFetch, resp.StatusCode)
	}

	var body tagsResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return nil, "", fmt.Errorf("%w: failed to parse tags: %w", entities.ErrRemoteFetch, decodeErr)
	}
	return body.Tags, r.nextPage(pageURL, resp.Header.Get("Link")), nil
}

// nextPage extracts the rel="next" target of a Link header, e.g.
// `</v2/library/nginx/tags/list?last=1.25&n=100>; rel="next"`.
func (r *VersionRepository) nextPage(current, link string) string {
	if link == "" || !strings.Contains(link, `rel="next"`) {
		return ""
	}
	start := strings.Index(link, "<")
	end := strings.Index(link, ">")
	if start < 0 || end <= start {
		return ""
	}
	base, err := url.Parse(current)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(link[start+1 : end])
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
