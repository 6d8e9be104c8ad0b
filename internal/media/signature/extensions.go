package signature

import (
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]struct{}{}

func init() {
	for _, ext := range []string{
		".3g2", ".3gp", ".3gp2", ".3gpp", ".60d", ".ajp", ".asf", ".asx",
		".avchd", ".avi", ".bik", ".bix", ".box", ".cam", ".dat", ".divx",
		".dmf", ".dv", ".dvr-ms", ".evo", ".flc", ".fli", ".flic", ".flv",
		".flx", ".gvi", ".gvp", ".h264", ".m1v", ".m2p", ".m2ts", ".m2v",
		".m4e", ".m4v", ".mjp", ".mjpeg", ".mjpg", ".mkv", ".moov", ".mov",
		".movhd", ".movie", ".movx", ".mp4", ".mpe", ".mpeg", ".mpg", ".mpv",
		".mpv2", ".mxf", ".nsv", ".nut", ".ogg", ".ogm", ".omf", ".ps", ".qt",
		".ram", ".rm", ".rmvb", ".swf", ".ts", ".vfw", ".vid", ".video", ".viv",
		".vivo", ".vob", ".vro", ".wm", ".wmv", ".wmx", ".wrap", ".wvx", ".wx",
		".x264", ".xvid",
	} {
		videoExtensions[ext] = struct{}{}
	}
}

// IsVideoExtension reports whether path ends in a known video container
// extension. Matching is case-insensitive.
func IsVideoExtension(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// VideoExtensions returns the recognised extensions, dot-prefixed.
func VideoExtensions() []string {
	out := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		out = append(out, ext)
	}
	return out
}
