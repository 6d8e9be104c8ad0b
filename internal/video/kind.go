package video

// Kind is the closed set of video variants.
type Kind int

const (
	// KindVideo is a recognised video whose content type could not be guessed.
	KindVideo Kind = iota
	// KindMovie carries Movie fields.
	KindMovie
	// KindEpisode carries Episode fields.
	KindEpisode
)

// Specific reports whether the variant carries classified metadata.
func (k Kind) Specific() bool {
	switch k {
	case KindMovie, KindEpisode:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindEpisode:
		return "episode"
	default:
		return "video"
	}
}
