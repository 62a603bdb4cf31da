package launcher

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	launcherName    = "mc-launcher"
	launcherVersion = "1.0"
)

// RuntimeConfig carries the resolved values launch argument templates are
// substituted against. It is derived from Spec, Account, and the version
// document saved to disk by a prior install.
type RuntimeConfig struct {
	GameDirectory    string
	NativesDirectory string
	Classpath        []string
	AuthPlayerName   string
	AuthUUID         string
	UserType         string
	VersionName      string
	VersionType      string
	AssetsRoot       string
	AssetsIndexName  string
	MemoryLimitMiB   int
}

// jvmSubstitutions returns the `${...}` placeholder table for JVM argument
// templates.
func (rc RuntimeConfig) jvmSubstitutions() map[string]string {
	return map[string]string{
		"natives_directory": rc.NativesDirectory,
		"launcher_name":     launcherName,
		"launcher_version":  launcherVersion,
		"classpath":         strings.Join(rc.Classpath, classpathSeparator(CurrentOS)),
	}
}

// gameSubstitutions returns the `${...}` placeholder table for game
// argument templates.
func (rc RuntimeConfig) gameSubstitutions() map[string]string {
	return map[string]string{
		"auth_player_name":  rc.AuthPlayerName,
		"version_name":      rc.VersionName,
		"game_directory":    rc.GameDirectory,
		"assets_root":       rc.AssetsRoot,
		"assets_index_name": rc.AssetsIndexName,
		"auth_uuid":         rc.AuthUUID,
		"user_type":         rc.UserType,
		"version_type":      rc.VersionType,
	}
}

// substitute replaces every `${key}` occurrence in s using table; tokens
// with no entry in table are left untouched.
func substitute(s string, table map[string]string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start == -1 {
			b.WriteString(s)
			break
		}
		end := strings.Index(s[start:], "}")
		if end == -1 {
			b.WriteString(s)
			break
		}
		end += start
		key := s[start+2 : end]
		b.WriteString(s[:start])
		if val, ok := table[key]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
	return b.String()
}

// fixedJVMFlags returns the memory and GC flags prepended to every launch,
// independent of the version document's own jvm argument templates.
func fixedJVMFlags(rc RuntimeConfig) []string {
	return []string{
		"-Xmx" + strconv.Itoa(rc.MemoryLimitMiB) + "M",
		"-Xms" + strconv.Itoa(rc.MemoryLimitMiB/2) + "M",
		"-XX:+UseG1GC",
		"-XX:+UnlockExperimentalVMOptions",
	}
}

// BuildLaunchArgs composes the full JVM argument list (fixed flags, then
// the version document's templated jvm args, then the main class, then the
// templated game args) for a resolved version and runtime configuration.
func BuildLaunchArgs(version *Version, rc RuntimeConfig) []string {
	args := fixedJVMFlags(rc)

	jvmTable := rc.jvmSubstitutions()
	for _, raw := range StringArgs(version.Arguments.JVM) {
		args = append(args, substitute(raw, jvmTable))
	}

	args = append(args, version.MainClass)

	gameTable := rc.gameSubstitutions()
	for _, raw := range StringArgs(version.Arguments.Game) {
		args = append(args, substitute(raw, gameTable))
	}

	return args
}

// DefaultRuntimeConfig derives a RuntimeConfig from the handle's spec,
// account, and an installed version document, building the classpath out
// of every target library jar (see IsTargetLibrary) plus the version jar
// itself.
func DefaultRuntimeConfig(spec *Spec, account *Account, version *Version) RuntimeConfig {
	gameDir := spec.GameDirectory
	classpath := make([]string, 0, len(version.Libraries)+1)
	for _, lib := range version.Libraries {
		if !lib.IsTargetLibrary() {
			continue
		}
		classpath = append(classpath, filepath.Join(gameDir, "libraries", lib.Downloads.Primary.Path))
	}
	classpath = append(classpath, filepath.Join(gameDir, "versions", spec.GameVersion, spec.GameVersion+".jar"))

	return RuntimeConfig{
		GameDirectory:    gameDir,
		NativesDirectory: filepath.Join(gameDir, "natives"),
		Classpath:        classpath,
		AuthPlayerName:   account.DisplayName,
		AuthUUID:         account.StableUUID,
		UserType:         account.AccountType,
		VersionName:      spec.GameVersion,
		VersionType:      "release",
		AssetsRoot:       filepath.Join(gameDir, "assets"),
		AssetsIndexName:  version.AssetIndex.ID,
		MemoryLimitMiB:   spec.MemoryLimitMiB,
	}
}

// LaunchArgsError is returned by the run command when no version document
// exists yet for the configured game version.
type LaunchArgsError struct {
	Err error
}

func (e *LaunchArgsError) Error() string {
	return fmt.Sprintf("loading installed version for launch: %v", e.Err)
}

func (e *LaunchArgsError) Unwrap() error { return e.Err }
