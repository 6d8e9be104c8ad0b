package media

import (
	"os"
	"strings"
)

// SubtitleTrack describes one embedded subtitle track. Language holds the
// container's ISO 639-2 code and LanguageIETF its BCP 47 tag; either may be
// empty when the muxer did not record one.
type SubtitleTrack struct {
	Number       uint64
	Language     string
	LanguageIETF string
	Name         string
	CodecID      string
}

// Code returns the track's ISO 639 code, falling back to the primary subtag
// of the BCP 47 tag. Empty when neither is recorded.
func (t SubtitleTrack) Code() string {
	if code := strings.TrimSpace(t.Language); code != "" {
		return code
	}
	primary, _, _ := strings.Cut(strings.TrimSpace(t.LanguageIETF), "-")
	return primary
}

// TrackReader lists subtitle tracks embedded in an open container file.
type TrackReader interface {
	ReadTracks(f *os.File) ([]SubtitleTrack, error)
}
