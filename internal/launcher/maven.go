package launcher

import "strings"

// MavenToPath converts a "group:artifact:version" maven coordinate into its
// relative repository layout path, e.g.
//
//	net.fabricmc:sponge-mixin:0.13.3+mixin.0.8.5
//	-> net/fabricmc/sponge-mixin/0.13.3+mixin.0.8.5/sponge-mixin-0.13.3+mixin.0.8.5.jar
func MavenToPath(coordinate string) string {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 3 {
		return coordinate
	}
	group, artifact, version := parts[0], parts[1], parts[2]
	groupPath := strings.ReplaceAll(group, ".", "/")
	return groupPath + "/" + artifact + "/" + version + "/" + artifact + "-" + version + ".jar"
}
