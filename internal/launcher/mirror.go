package launcher

import "regexp"

// originRe matches the scheme://host[:port]/ prefix of a URL.
var originRe = regexp.MustCompile(`https://\S+?/`)

// RewriteOrigin replaces the origin (scheme://host[:port]/) of url with
// base, preserving the path component. If url has no matching origin, it is
// returned unchanged.
func RewriteOrigin(url, base string) string {
	loc := originRe.FindStringIndex(url)
	if loc == nil {
		return url
	}
	return base + url[loc[1]:]
}

// MirrorSet holds the configurable base-URLs used to rewrite upstream URLs.
type MirrorSet struct {
	VersionIndex string
	Assets       string
	Client       string
	Libraries    string
	FabricMeta   string
	FabricMaven  string
}

// OfficialMirrors returns the mirror set pointing at Mojang's own
// infrastructure.
func OfficialMirrors() MirrorSet {
	return MirrorSet{
		VersionIndex: "https://launchermeta.mojang.com/",
		Assets:       "https://resources.download.minecraft.net/",
		Client:       "https://launcher.mojang.com/",
		Libraries:    "https://libraries.minecraft.net/",
		FabricMeta:   "https://meta.fabricmc.net",
		FabricMaven:  "https://maven.fabricmc.net/",
	}
}

// BMCLAPIMirrors returns the mirror set pointing at the BMCLAPI community
// mirror, useful where the official infrastructure is unreachable.
func BMCLAPIMirrors() MirrorSet {
	return MirrorSet{
		VersionIndex: "https://bmclapi2.bangbang93.com/",
		Assets:       "https://bmclapi2.bangbang93.com/assets/",
		Client:       "https://bmclapi2.bangbang93.com/",
		Libraries:    "https://bmclapi2.bangbang93.com/maven/",
		FabricMeta:   "https://bmclapi2.bangbang93.com/fabric-meta",
		FabricMaven:  "https://bmclapi2.bangbang93.com/maven/",
	}
}

// MirrorsByName resolves a mirror set preset by its config name.
func MirrorsByName(name string) (MirrorSet, bool) {
	switch name {
	case "", "official":
		return OfficialMirrors(), true
	case "bmclapi":
		return BMCLAPIMirrors(), true
	default:
		return MirrorSet{}, false
	}
}

// fabricMavenOrigin is the literal URL the upstream fabric profile library
// entries use for their "primary" maven repository, signalling that the
// artifact should be fetched through the FabricMaven mirror rather than the
// general-purpose Libraries mirror.
const fabricMavenOrigin = "https://maven.fabricmc.net/"
