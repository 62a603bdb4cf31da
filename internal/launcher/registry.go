package launcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// RegistryMirror is the base URL of the mod registry API. It is a var
// rather than a const solely so tests can point it at a local server;
// production code never reassigns it.
var RegistryMirror = "https://api.modrinth.com/v2"

// ModVersionFile is a single downloadable file attached to a registry
// version record.
type ModVersionFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	SHA1     string `json:"sha1"`
}

// ModVersion is a single published version record for a mod project.
type ModVersion struct {
	VersionNumber string           `json:"version_number"`
	GameVersions  []string         `json:"game_versions"`
	Loaders       []string         `json:"loaders"`
	Files         []ModVersionFile `json:"files"`
}

// ProjectSearchResult is one project hit returned by the registry search.
type ProjectSearchResult struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ProjectType string `json:"project_type"`
}

type searchResponse struct {
	Hits []ProjectSearchResult `json:"hits"`
}

// ListVersions fetches every published version of a mod project, retrying
// with the registry's long timeout (§4.10: mod-registry calls use a
// 100-second request timeout rather than the 10-second artifact timeout).
func ListVersions(ctx context.Context, client *http.Client, modName string) ([]ModVersion, error) {
	u := RegistryMirror + "/project/" + url.PathEscape(modName) + "/version"
	data, err := FetchVerifiedLongTimeout(ctx, client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("listing versions for %q: %w", modName, err)
	}
	var versions []ModVersion
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("parsing versions for %q: %w", modName, err)
	}
	return versions, nil
}

// SearchProjects queries the registry's project search for query, capped at
// limit results (clamped to 100).
func SearchProjects(ctx context.Context, client *http.Client, query string, limit int) ([]ProjectSearchResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	u := fmt.Sprintf("%s/search?query=%s&limit=%d", RegistryMirror, url.QueryEscape(query), limit)
	data, err := FetchVerifiedLongTimeout(ctx, client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("searching projects for %q: %w", query, err)
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing search results for %q: %w", query, err)
	}
	return resp.Hits, nil
}

// loaderString renders a loader spec the way the registry encodes it in a
// version record's "loaders" list.
func loaderString(loader LoaderSpec) string {
	if loader.Kind == "" {
		return "" // never matches: spec has no loader configured
	}
	return loader.Kind
}
