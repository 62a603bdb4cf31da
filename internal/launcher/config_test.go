package launcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	h, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	h.SpecMut().GameVersion = "1.21"
	if err := h.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	h2, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if h2.Spec().GameVersion != "1.21" {
		t.Errorf("GameVersion = %q; want 1.21", h2.Spec().GameVersion)
	}
	if h2.Account().AccountType != "offline" {
		t.Errorf("AccountType = %q; want offline", h2.Account().AccountType)
	}
}

func TestReadRejectsInvariantViolation(t *testing.T) {
	dir := t.TempDir()
	version := "1.0"
	local := "foo.jar"
	_ = writeTOML(filepath.Join(dir, specFileName), Spec{
		GameDirectory: dir,
		Mods: map[string]ModRef{
			"bad": {Version: &version, LocalFile: &local},
		},
	})

	if _, err := Read(dir); err == nil {
		t.Fatal("expected ConfigInvariantViolationError")
	} else if _, ok := err.(*ConfigInvariantViolationError); !ok {
		t.Errorf("err = %v (%T); want *ConfigInvariantViolationError", err, err)
	}
}

func TestReadMissingSpecIsConfigParseError(t *testing.T) {
	if _, err := Read(t.TempDir()); err == nil {
		t.Fatal("expected error reading a directory with no config.toml")
	} else if _, ok := err.(*ConfigParseError); !ok {
		t.Errorf("err = %v (%T); want *ConfigParseError", err, err)
	}
}

func TestAddOfflineAccountGeneratesFreshUUID(t *testing.T) {
	dir := t.TempDir()
	h, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	before := h.Account().StableUUID
	h.AddOfflineAccount("newname")
	if h.Account().StableUUID == before {
		t.Error("expected a fresh UUID")
	}
	if h.Account().DisplayName != "newname" {
		t.Errorf("DisplayName = %q; want newname", h.Account().DisplayName)
	}
}

func mkMod(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestReconcileModDirDisableEnableCycle(t *testing.T) {
	gameDir := t.TempDir()
	modDir := filepath.Join(gameDir, "mods")
	mkMod(t, modDir, "a.jar")
	mkMod(t, modDir, "b.jar")
	mkMod(t, modDir, "c.jar")

	h := &Handle{dir: gameDir}
	h.spec = dirty[Spec]{value: Spec{
		GameDirectory: gameDir,
		Mods: map[string]ModRef{
			"a": {Version: strPtr("1")},
			"b": {Version: strPtr("1")},
		},
	}}
	h.lock = dirty[Lock]{value: Lock{Mods: map[string]LockedMod{
		"a": {FileName: "a.jar"},
		"b": {FileName: "b.jar"},
	}}}

	if err := h.reconcileModDir(); err != nil {
		t.Fatalf("reconcileModDir: %v", err)
	}
	assertExists(t, modDir, "a.jar")
	assertExists(t, modDir, "b.jar")
	assertExists(t, modDir, "c.jar.unuse")

	// Second invocation is idempotent: renames nothing.
	if err := h.reconcileModDir(); err != nil {
		t.Fatalf("reconcileModDir (second): %v", err)
	}
	assertExists(t, modDir, "a.jar")
	assertExists(t, modDir, "b.jar")
	assertExists(t, modDir, "c.jar.unuse")

	// Remove b from the spec, reconcile: b.jar becomes disabled.
	delete(h.spec.value.Mods, "b")
	delete(h.lock.value.Mods, "b")
	if err := h.reconcileModDir(); err != nil {
		t.Fatalf("reconcileModDir (after remove): %v", err)
	}
	assertExists(t, modDir, "a.jar")
	assertExists(t, modDir, "b.jar.unuse")
	assertExists(t, modDir, "c.jar.unuse")

	// Re-add b: b.jar.unuse becomes enabled again.
	h.spec.value.Mods["b"] = ModRef{Version: strPtr("1")}
	h.lock.value.Mods["b"] = LockedMod{FileName: "b.jar"}
	if err := h.reconcileModDir(); err != nil {
		t.Fatalf("reconcileModDir (after re-add): %v", err)
	}
	assertExists(t, modDir, "a.jar")
	assertExists(t, modDir, "b.jar")
	assertExists(t, modDir, "c.jar.unuse")
}

func strPtr(s string) *string { return &s }

func assertExists(t *testing.T, dir, name string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Errorf("expected %q to exist: %v", name, err)
	}
}
