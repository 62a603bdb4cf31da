package launcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// FabricLoaderEntry is one entry of the Fabric loader catalog.
type FabricLoaderEntry struct {
	Separator string `json:"separator"`
	Build     int    `json:"build"`
	Maven     string `json:"maven"`
	Version   string `json:"version"`
	Stable    bool   `json:"stable"`
}

// FetchFabricLoaders fetches the list of published Fabric loader versions.
func FetchFabricLoaders(ctx context.Context, client *http.Client, mirrors MirrorSet) ([]FabricLoaderEntry, error) {
	url := mirrors.FabricMeta + "/v2/versions/loader"
	data, err := FetchVerified(ctx, client, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching fabric loader catalog: %w", err)
	}
	var loaders []FabricLoaderEntry
	if err := json.Unmarshal(data, &loaders); err != nil {
		return nil, fmt.Errorf("parsing fabric loader catalog: %w", err)
	}
	return loaders, nil
}

// HasLoaderVersion reports whether version is a published Fabric loader.
func HasLoaderVersion(loaders []FabricLoaderEntry, version string) bool {
	for _, l := range loaders {
		if l.Version == version {
			return true
		}
	}
	return false
}

// FabricLibrary is one library entry of a Fabric loader profile, using the
// loader metadata API's shape rather than the official launcher's.
type FabricLibrary struct {
	Name string  `json:"name"`
	URL  string  `json:"url"`
	SHA1 *string `json:"sha1,omitempty"`
	Size *int64  `json:"size,omitempty"`
}

// ToLibrary translates a Fabric profile library into the official version
// document's Library shape: the maven coordinate becomes a relative path,
// digest/size carry over if present, and the library has no classifiers,
// rules, or native map.
func (l FabricLibrary) ToLibrary() Library {
	return Library{
		Name: l.Name,
		Downloads: LibDownloads{
			Primary: Artifact{
				Path:   MavenToPath(l.Name),
				Digest: l.SHA1,
				Size:   l.Size,
				URL:    l.URL,
			},
		},
	}
}

// FabricArguments holds the Fabric profile's own argument template lists.
type FabricArguments struct {
	Game []json.RawMessage `json:"game,omitempty"`
	JVM  []json.RawMessage `json:"jvm,omitempty"`
}

// FabricProfile is the merged launch profile served by the Fabric loader
// metadata API for a given (game version, loader version) pair.
type FabricProfile struct {
	ID           string          `json:"id"`
	InheritsFrom string          `json:"inheritsFrom"`
	MainClass    string          `json:"mainClass"`
	Arguments    FabricArguments `json:"arguments"`
	Libraries    []FabricLibrary `json:"libraries"`
}

// FetchFabricProfile fetches the merge profile for gameVersion/loaderVersion.
// Spaces in either identifier are percent-encoded as %20, matching the
// upstream API's literal escaping convention.
func FetchFabricProfile(ctx context.Context, client *http.Client, mirrors MirrorSet, gameVersion, loaderVersion string) (*FabricProfile, error) {
	u := mirrors.FabricMeta + "/v2/versions/loader/" + url.PathEscape(gameVersion) + "/" + url.PathEscape(loaderVersion) + "/profile/json"
	data, err := FetchVerified(ctx, client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching fabric profile: %w", err)
	}
	var p FabricProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing fabric profile: %w", err)
	}
	return &p, nil
}

// MergeFabricProfile merges p onto v in place: profile libraries are
// appended, main class is overwritten if present, and jvm/game argument
// lists are appended to (Fabric profiles never override them).
func MergeFabricProfile(v *Version, p *FabricProfile) {
	for _, lib := range p.Libraries {
		v.Libraries = append(v.Libraries, lib.ToLibrary())
	}
	if p.MainClass != "" {
		v.MainClass = p.MainClass
	}
	v.Arguments.JVM = append(v.Arguments.JVM, p.Arguments.JVM...)
	v.Arguments.Game = append(v.Arguments.Game, p.Arguments.Game...)
}
