package launcher

import "path/filepath"

// ComposeTasks derives the full install task set from a resolved version
// document, asset catalog, mirror set, and game directory. Task production
// order has no semantic meaning.
func ComposeTasks(version *Version, assets *AssetCatalog, mirrors MirrorSet, gameDir, gameVersion string) []Task {
	var tasks []Task
	tasks = append(tasks, assetTasks(assets, mirrors, gameDir)...)
	tasks = append(tasks, libraryTasks(version, mirrors, gameDir)...)
	tasks = append(tasks, nativeTasks(version, mirrors, gameDir)...)
	tasks = append(tasks, clientTask(version, mirrors, gameDir, gameVersion))
	return tasks
}

func assetTasks(assets *AssetCatalog, mirrors MirrorSet, gameDir string) []Task {
	tasks := make([]Task, 0, len(assets.Objects))
	for _, asset := range assets.Objects {
		hash := asset.Hash
		prefix := hash[:2]
		tasks = append(tasks, Task{
			URL:            mirrors.Assets + prefix + "/" + hash,
			ExpectedDigest: &hash,
			Destination:    filepath.Join(gameDir, "assets", "objects", prefix, hash),
			Label:          "asset " + hash,
		})
	}
	return tasks
}

func libraryTasks(version *Version, mirrors MirrorSet, gameDir string) []Task {
	var tasks []Task
	for _, lib := range version.Libraries {
		if !lib.IsTargetLibrary() {
			continue
		}
		art := lib.Downloads.Primary
		base := mirrors.Libraries
		if art.URL == fabricMavenOrigin {
			base = mirrors.FabricMaven
		}
		tasks = append(tasks, Task{
			URL:            base + art.Path,
			ExpectedDigest: art.Digest,
			Destination:    filepath.Join(gameDir, "libraries", art.Path),
			Label:          "library " + art.Path,
		})
	}
	return tasks
}

func nativeTasks(version *Version, mirrors MirrorSet, gameDir string) []Task {
	var tasks []Task
	for _, lib := range version.Libraries {
		if !lib.IsTargetNative() {
			continue
		}
		art, ok := lib.nativeArtifact()
		if !ok {
			continue
		}
		tasks = append(tasks, Task{
			URL:            mirrors.Libraries + art.Path,
			ExpectedDigest: art.Digest,
			Destination:    filepath.Join(gameDir, "libraries", art.Path),
			Label:          "native " + art.Path,
		})
	}
	return tasks
}

func clientTask(version *Version, mirrors MirrorSet, gameDir, gameVersion string) Task {
	client := version.Downloads["client"]
	return Task{
		URL:            RewriteOrigin(client.URL, mirrors.Client),
		ExpectedDigest: client.Digest,
		Destination:    filepath.Join(gameDir, "versions", gameVersion, gameVersion+".jar"),
		Label:          "client",
	}
}
