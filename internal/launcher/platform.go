package launcher

import "runtime"

// CurrentOS is the manifest OS tag for the host platform, computed once at
// startup rather than pinned as a build-tag constant so the library
// filtering and native-classifier selection logic can be exercised for
// every platform from a single test binary.
var CurrentOS = detectOS(runtime.GOOS)

func detectOS(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

// nativeSuffix returns the shared-library file extension extracted from
// library archives on os.
func nativeSuffix(os string) string {
	switch os {
	case "windows":
		return ".dll"
	case "osx":
		return ".dylib"
	default:
		return ".so"
	}
}

// classpathSeparator returns the path-list separator used when joining
// classpath entries on os.
func classpathSeparator(os string) string {
	if os == "windows" {
		return ";"
	}
	return ":"
}
