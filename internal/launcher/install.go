package launcher

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
)

// LoaderSpec names an optional mod loader to merge onto the base version.
type LoaderSpec struct {
	Kind    string `toml:"kind,omitempty"` // "" or "fabric"
	Version string `toml:"version,omitempty"`
}

// InstallMC resolves gameVersion (optionally merged with a Fabric loader
// profile), fetches its asset catalog, composes the full install task set,
// runs it through the worker pool, extracts native libraries, and saves the
// merged version document. It is the entry point the CLI's install command
// drives; the run command reads the saved version document instead.
func InstallMC(ctx context.Context, client *http.Client, mirrors MirrorSet, gameDir, gameVersion string, loader LoaderSpec, sink ProgressSink) (*Version, error) {
	if client == nil {
		client = NewDefaultHTTPClient()
	}

	idx, err := FetchVersionIndex(ctx, client, mirrors)
	if err != nil {
		return nil, err
	}

	version, err := FetchVersion(ctx, client, idx, gameVersion, mirrors)
	if err != nil {
		return nil, err
	}

	if loader.Kind == "fabric" {
		loaders, err := FetchFabricLoaders(ctx, client, mirrors)
		if err != nil {
			return nil, err
		}
		if !HasLoaderVersion(loaders, loader.Version) {
			return nil, &LoaderVersionNotFoundError{Version: loader.Version}
		}
		profile, err := FetchFabricProfile(ctx, client, mirrors, gameVersion, loader.Version)
		if err != nil {
			return nil, err
		}
		MergeFabricProfile(version, profile)
	}

	assets, err := FetchAssetCatalog(ctx, client, version.AssetIndex, mirrors)
	if err != nil {
		return nil, err
	}
	if err := assets.Save(filepath.Join(gameDir, "assets", "indexes", version.AssetIndex.ID+".json")); err != nil {
		return nil, err
	}

	tasks := ComposeTasks(version, assets, mirrors, gameDir, gameVersion)
	if err := RunPool(ctx, tasks, sink, client); err != nil {
		return nil, fmt.Errorf("installing %q: %w", gameVersion, err)
	}

	if err := ExtractNatives(version, gameDir); err != nil {
		return nil, err
	}

	if err := version.Save(filepath.Join(gameDir, "versions", gameVersion, gameVersion+".json")); err != nil {
		return nil, err
	}

	return version, nil
}
