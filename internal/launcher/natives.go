package launcher

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractNatives unpacks the platform-native shared libraries out of every
// downloaded native classifier jar into gameDir/natives. Only entries whose
// name carries the CurrentOS native suffix are extracted; metadata
// directories such as META-INF are skipped.
func ExtractNatives(version *Version, gameDir string) error {
	destDir := filepath.Join(gameDir, "natives")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating natives directory: %w", err)
	}
	suffix := nativeSuffix(CurrentOS)
	for _, lib := range version.Libraries {
		if !lib.IsTargetNative() {
			continue
		}
		art, ok := lib.nativeArtifact()
		if !ok {
			continue
		}
		jarPath := filepath.Join(gameDir, "libraries", art.Path)
		if err := extractArchiveNatives(jarPath, destDir, suffix); err != nil {
			return fmt.Errorf("extracting natives from %q: %w", jarPath, err)
		}
	}
	return nil
}

func extractArchiveNatives(jarPath, destDir, suffix string) error {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		if !strings.HasSuffix(f.Name, suffix) {
			continue
		}
		if err := extractOne(f, filepath.Join(destDir, filepath.Base(f.Name))); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
