package launcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// resolverConcurrency bounds concurrent mod-registry resolutions.
const resolverConcurrency = 10

// Resolver drives mod add/install/update/sync/remove/clean/search against a
// config handle guarded by a read/write lock: resolution reads take the
// shared lock, lock-document writes take the exclusive lock, and the
// exclusive lock is never held across a network call.
type Resolver struct {
	mu     sync.RWMutex
	handle *Handle
	client *http.Client
}

// NewResolver builds a resolver over handle, using client for registry and
// download requests (a tuned default client is used if client is nil).
func NewResolver(handle *Handle, client *http.Client) *Resolver {
	if client == nil {
		client = NewDefaultHTTPClient()
	}
	return &Resolver{handle: handle, client: client}
}

// FetchVersion queries the registry for modName, retains records matching
// the handle's game version and loader (and versionFilter if non-empty),
// and returns them. The caller takes the first element as the chosen match.
func (r *Resolver) FetchVersion(ctx context.Context, modName, versionFilter string) ([]ModVersion, error) {
	r.mu.RLock()
	spec := *r.handle.Spec()
	r.mu.RUnlock()

	all, err := ListVersions(ctx, r.client, modName)
	if err != nil {
		return nil, err
	}

	loader := loaderString(spec.Loader)
	var matched []ModVersion
	for _, v := range all {
		if !containsString(v.GameVersions, spec.GameVersion) {
			continue
		}
		if loader == "" || !containsString(v.Loaders, loader) {
			continue
		}
		if versionFilter != "" && v.VersionNumber != versionFilter {
			continue
		}
		matched = append(matched, v)
	}
	if len(matched) == 0 {
		return nil, &NoMatchingModVersionError{Mod: modName}
	}
	return matched, nil
}

func containsString(items []string, target string) bool {
	for _, s := range items {
		if s == target {
			return true
		}
	}
	return false
}

// Add resolves name (or records it as a local reference) into the spec and
// lock, running Install afterward unless configOnly is set.
func (r *Resolver) Add(ctx context.Context, name, version string, local, configOnly bool) error {
	if local {
		modPath := filepath.Join(r.handle.Spec().GameDirectory, "mods", name)
		if _, err := os.Stat(modPath); err != nil {
			return &MissingLocalFileError{Name: name}
		}
		r.mu.Lock()
		spec := r.handle.SpecMut()
		if spec.Mods == nil {
			spec.Mods = make(map[string]ModRef)
		}
		spec.Mods[name] = ModRef{LocalFile: &name}

		lock := r.handle.LockMut()
		if lock.Mods == nil {
			lock.Mods = make(map[string]LockedMod)
		}
		lock.Mods[name] = LockedMod{FileName: name}
		r.mu.Unlock()
	} else {
		matches, err := r.FetchVersion(ctx, name, version)
		if err != nil {
			return err
		}
		chosen := matches[0]
		file := chosen.Files[0]

		r.mu.Lock()
		spec := r.handle.SpecMut()
		if spec.Mods == nil {
			spec.Mods = make(map[string]ModRef)
		}
		vn := chosen.VersionNumber
		spec.Mods[name] = ModRef{Version: &vn}

		lock := r.handle.LockMut()
		if lock.Mods == nil {
			lock.Mods = make(map[string]LockedMod)
		}
		gv := r.handle.Spec().GameVersion
		lock.Mods[name] = LockedMod{
			FileName:    file.Filename,
			Version:     &vn,
			GameVersion: gv,
			URL:         &file.URL,
			Digest:      &file.SHA1,
		}
		r.mu.Unlock()
	}

	if configOnly {
		return nil
	}
	return r.Install(ctx, nil)
}

// Install derives download tasks from the lock for every mod named in the
// spec and runs them through the worker pool. Lock entries with no URL or
// digest are local-only references and are skipped.
func (r *Resolver) Install(ctx context.Context, sink ProgressSink) error {
	r.mu.RLock()
	spec := *r.handle.Spec()
	lock := *r.handle.Lock()
	r.mu.RUnlock()

	gameDir := spec.GameDirectory
	var tasks []Task
	for name := range spec.Mods {
		locked, ok := lock.Mods[name]
		if !ok || locked.URL == nil || locked.Digest == nil {
			continue
		}
		tasks = append(tasks, Task{
			URL:            *locked.URL,
			ExpectedDigest: locked.Digest,
			Destination:    filepath.Join(gameDir, "mods", locked.FileName),
			Label:          "mod " + name,
		})
	}
	return RunPool(ctx, tasks, sink, r.client)
}

// Sync re-resolves only the spec mods whose recorded version disagrees with
// (or is absent from) the lock.
func (r *Resolver) Sync(ctx context.Context, configOnly bool) error {
	return r.resolveAll(ctx, configOnly, func(name string, ref ModRef) (string, bool) {
		if ref.LocalFile != nil {
			return "", false
		}
		r.mu.RLock()
		locked, ok := r.handle.Lock().Mods[name]
		r.mu.RUnlock()
		if ok && locked.Version != nil && ref.Version != nil && *locked.Version == *ref.Version {
			return "", false
		}
		version := ""
		if ref.Version != nil {
			version = *ref.Version
		}
		return version, true
	})
}

// Update re-resolves every remote spec mod against the newest matching
// version, ignoring whatever is currently locked.
func (r *Resolver) Update(ctx context.Context, configOnly bool) error {
	return r.resolveAll(ctx, configOnly, func(name string, ref ModRef) (string, bool) {
		if ref.LocalFile != nil {
			return "", false
		}
		return "", true
	})
}

// resolveAll runs filter over a snapshot of the spec's mods with bounded
// concurrency, resolving each selected mod and writing the result back
// under the handle's exclusive lock (never held across the network call).
func (r *Resolver) resolveAll(ctx context.Context, configOnly bool, filter func(name string, ref ModRef) (versionFilter string, selected bool)) error {
	r.mu.RLock()
	mods := make(map[string]ModRef, len(r.handle.Spec().Mods))
	for name, ref := range r.handle.Spec().Mods {
		mods[name] = ref
	}
	r.mu.RUnlock()

	eg := new(errgroup.Group)
	eg.SetLimit(resolverConcurrency)
	for name, ref := range mods {
		name, ref := name, ref
		versionFilter, selected := filter(name, ref)
		if !selected {
			continue
		}
		eg.Go(func() error {
			matches, err := r.FetchVersion(ctx, name, versionFilter)
			if err != nil {
				return err
			}
			chosen := matches[0]
			file := chosen.Files[0]
			vn := chosen.VersionNumber

			r.mu.Lock()
			lock := r.handle.LockMut()
			if lock.Mods == nil {
				lock.Mods = make(map[string]LockedMod)
			}
			lock.Mods[name] = LockedMod{
				FileName:    file.Filename,
				Version:     &vn,
				GameVersion: r.handle.Spec().GameVersion,
				URL:         &file.URL,
				Digest:      &file.SHA1,
			}
			r.mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}
	return r.Install(ctx, nil)
}

// Remove deletes name's backing mod file (if present) and removes it from
// both documents.
func (r *Resolver) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock := r.handle.LockMut()
	if locked, ok := lock.Mods[name]; ok {
		path := filepath.Join(r.handle.Spec().GameDirectory, "mods", locked.FileName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing mod file %q: %w", path, err)
		}
		delete(lock.Mods, name)
	}
	delete(r.handle.SpecMut().Mods, name)
	return nil
}

// Clean drops lock entries with no corresponding spec entry and deletes
// every disabled (".unuse") file under the mods directory.
func (r *Resolver) Clean() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec := r.handle.Spec()
	lock := r.handle.LockMut()
	for name := range lock.Mods {
		if _, ok := spec.Mods[name]; !ok {
			delete(lock.Mods, name)
		}
	}

	modDir := filepath.Join(spec.GameDirectory, "mods")
	entries, err := os.ReadDir(modDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading mod directory %q: %w", modDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) == ".unuse" {
			if err := os.Remove(filepath.Join(modDir, entry.Name())); err != nil {
				return fmt.Errorf("removing disabled mod %q: %w", entry.Name(), err)
			}
		}
	}
	return nil
}

// Search queries the registry's project search, filtering to mod-type
// projects with at least one version supporting the handle's current
// loader and game version.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]ProjectSearchResult, error) {
	hits, err := SearchProjects(ctx, r.client, query, limit)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	spec := *r.handle.Spec()
	r.mu.RUnlock()
	loader := loaderString(spec.Loader)

	var out []ProjectSearchResult
	for _, hit := range hits {
		if hit.ProjectType != "mod" {
			continue
		}
		versions, err := ListVersions(ctx, r.client, hit.Slug)
		if err != nil {
			continue
		}
		for _, v := range versions {
			if containsString(v.GameVersions, spec.GameVersion) && loader != "" && containsString(v.Loaders, loader) {
				out = append(out, hit)
				break
			}
		}
	}
	return out, nil
}
