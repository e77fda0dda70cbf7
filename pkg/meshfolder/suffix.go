package meshfolder

import "strings"

// firstSuffix returns the first dot-delimited suffix of a file name, so
// "scan.obj" gives ".obj" and "scan.lod0.ply" gives ".lod0". Leading dots
// belong to the stem and a name ending in "." has no suffixes.
func firstSuffix(name string) string {
	if name == "" || strings.HasSuffix(name, ".") {
		return ""
	}
	stem := strings.TrimLeft(name, ".")
	i := strings.IndexByte(stem, '.')
	if i < 0 {
		return ""
	}
	rest := stem[i+1:]
	if j := strings.IndexByte(rest, '.'); j >= 0 {
		rest = rest[:j]
	}
	return "." + rest
}
