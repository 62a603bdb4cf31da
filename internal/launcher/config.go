package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

const (
	specFileName    = "config.toml"
	lockFileName    = "config.lock"
	accountFileName = "account.toml"
)

// ModRef is a single spec-side mod entry. Exactly one of Version/LocalFile
// is ever set; Read rejects any document that violates this.
type ModRef struct {
	Version   *string `toml:"version,omitempty"`
	LocalFile *string `toml:"local_file,omitempty"`
}

// Spec is the user-edited declarative configuration document.
type Spec struct {
	MemoryLimitMiB int               `toml:"memory_limit_mib"`
	WindowW        int               `toml:"window_w"`
	WindowH        int               `toml:"window_h"`
	GameDirectory  string            `toml:"game_directory"`
	GameVersion    string            `toml:"game_version"`
	JavaPath       string            `toml:"java_path"`
	Loader         LoaderSpec        `toml:"loader"`
	MirrorSet      string            `toml:"mirror_set"`
	Mods           map[string]ModRef `toml:"mods,omitempty"`
}

// LockedMod is a single lock-side mod entry, either a full remote
// resolution (all fields populated) or a local reference (FileName only).
type LockedMod struct {
	FileName    string  `toml:"file_name"`
	Version     *string `toml:"version,omitempty"`
	GameVersion string  `toml:"game_version,omitempty"`
	URL         *string `toml:"url,omitempty"`
	Digest      *string `toml:"digest,omitempty"`
}

// Lock is the machine-maintained mod resolution document.
type Lock struct {
	Mods map[string]LockedMod `toml:"mods,omitempty"`
}

// Account is the active user account.
type Account struct {
	DisplayName string `toml:"display_name"`
	AccountType string `toml:"account_type"`
	StableUUID  string `toml:"stable_uuid"`
}

func defaultSpec() Spec {
	return Spec{
		MemoryLimitMiB: 2048,
		WindowW:        854,
		WindowH:        480,
		GameDirectory:  ".",
		GameVersion:    "",
		JavaPath:       "java",
		MirrorSet:      "official",
	}
}

func defaultAccount() Account {
	return Account{
		DisplayName: "Player",
		AccountType: "offline",
		StableUUID:  uuid.NewString(),
	}
}

// dirty wraps a configuration document with an explicit touched flag. There
// is no destructor-driven write-back; callers must call Flush explicitly at
// the end of the command handler that mutated it.
type dirty[T any] struct {
	value   T
	touched bool
}

// Get returns an immutable view of the wrapped value.
func (d *dirty[T]) Get() *T { return &d.value }

// GetMut returns a mutable view of the wrapped value and marks it touched.
func (d *dirty[T]) GetMut() *T {
	d.touched = true
	return &d.value
}

// Handle owns the in-memory spec/lock/account triple for one game directory.
type Handle struct {
	dir     string
	spec    dirty[Spec]
	lock    dirty[Lock]
	account dirty[Account]
}

func (h *Handle) specPath() string    { return filepath.Join(h.dir, specFileName) }
func (h *Handle) lockPath() string    { return filepath.Join(h.dir, lockFileName) }
func (h *Handle) accountPath() string { return filepath.Join(h.dir, accountFileName) }

// Spec returns an immutable view of the spec document.
func (h *Handle) Spec() *Spec { return h.spec.Get() }

// SpecMut returns a mutable view of the spec document.
func (h *Handle) SpecMut() *Spec { return h.spec.GetMut() }

// Lock returns an immutable view of the lock document.
func (h *Handle) Lock() *Lock { return h.lock.Get() }

// LockMut returns a mutable view of the lock document.
func (h *Handle) LockMut() *Lock { return h.lock.GetMut() }

// Account returns an immutable view of the account document.
func (h *Handle) Account() *Account { return h.account.Get() }

// AccountMut returns a mutable view of the account document.
func (h *Handle) AccountMut() *Account { return h.account.GetMut() }

// Init writes a default spec, empty lock, and default account to dir.
func Init(dir string) (*Handle, error) {
	h := &Handle{
		dir:     dir,
		spec:    dirty[Spec]{value: defaultSpec(), touched: true},
		lock:    dirty[Lock]{value: Lock{}, touched: true},
		account: dirty[Account]{value: defaultAccount(), touched: true},
	}
	if err := h.Flush(); err != nil {
		return nil, err
	}
	return h, nil
}

// Read parses the spec, lock (defaulting to empty), and account (defaulting
// to a generated one) from dir, validating the spec mod invariant.
func Read(dir string) (*Handle, error) {
	h := &Handle{dir: dir}

	specData, err := os.ReadFile(h.specPath())
	if err != nil {
		return nil, &ConfigParseError{Path: h.specPath(), Err: err}
	}
	var spec Spec
	if err := toml.Unmarshal(specData, &spec); err != nil {
		return nil, &ConfigParseError{Path: h.specPath(), Err: err}
	}
	for name, ref := range spec.Mods {
		hasVersion := ref.Version != nil
		hasLocal := ref.LocalFile != nil
		if hasVersion == hasLocal {
			return nil, &ConfigInvariantViolationError{Mod: name}
		}
	}
	h.spec = dirty[Spec]{value: spec}

	var lock Lock
	if lockData, err := os.ReadFile(h.lockPath()); err == nil {
		if err := toml.Unmarshal(lockData, &lock); err != nil {
			return nil, &ConfigParseError{Path: h.lockPath(), Err: err}
		}
	} else if !os.IsNotExist(err) {
		return nil, &ConfigParseError{Path: h.lockPath(), Err: err}
	}
	h.lock = dirty[Lock]{value: lock}

	account := defaultAccount()
	if accountData, err := os.ReadFile(h.accountPath()); err == nil {
		if err := toml.Unmarshal(accountData, &account); err != nil {
			return nil, &ConfigParseError{Path: h.accountPath(), Err: err}
		}
	} else if !os.IsNotExist(err) {
		return nil, &ConfigParseError{Path: h.accountPath(), Err: err}
	}
	h.account = dirty[Account]{value: account}

	return h, nil
}

// AddOfflineAccount replaces the active account with a freshly generated
// offline account under the given display name.
func (h *Handle) AddOfflineAccount(name string) {
	acc := h.AccountMut()
	acc.DisplayName = name
	acc.AccountType = "offline"
	acc.StableUUID = uuid.NewString()
}

// Flush writes back every touched document and reconciles the on-disk mod
// directory against the spec/lock. It is the explicit replacement for
// write-on-drop: every command handler calls it after it finishes mutating
// the handle.
func (h *Handle) Flush() error {
	if h.spec.touched {
		if err := writeTOML(h.specPath(), h.spec.value); err != nil {
			return err
		}
		h.spec.touched = false
	}
	if h.lock.touched {
		if err := writeTOML(h.lockPath(), h.lock.value); err != nil {
			return err
		}
		h.lock.touched = false
	}
	if h.account.touched {
		if err := writeTOML(h.accountPath(), h.account.value); err != nil {
			return err
		}
		h.account.touched = false
	}
	return h.reconcileModDir()
}

func writeTOML(path string, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// reconcileModDir makes the set of enabled (non-".unuse") files under
// <game_directory>/mods a function of the current spec/lock: any file not
// backing a spec mod is disabled by appending ".unuse"; any disabled file
// that now backs a spec mod is re-enabled. It is idempotent.
func (h *Handle) reconcileModDir() error {
	modDir := filepath.Join(h.Spec().GameDirectory, "mods")
	entries, err := os.ReadDir(modDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading mod directory %q: %w", modDir, err)
	}

	used := make(map[string]bool)
	for name := range h.Spec().Mods {
		if locked, ok := h.Lock().Mods[name]; ok {
			used[locked.FileName] = true
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".unuse"):
			base := strings.TrimSuffix(name, ".unuse")
			if used[base] {
				if err := os.Rename(filepath.Join(modDir, name), filepath.Join(modDir, base)); err != nil {
					return fmt.Errorf("enabling mod %q: %w", base, err)
				}
			}
		default:
			if !used[name] {
				if err := os.Rename(filepath.Join(modDir, name), filepath.Join(modDir, name+".unuse")); err != nil {
					return fmt.Errorf("disabling mod %q: %w", name, err)
				}
			}
		}
	}
	return nil
}
