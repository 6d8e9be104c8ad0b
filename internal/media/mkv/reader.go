package mkv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"sublime/internal/media"
)

// ErrNotMatroska reports input that does not start with an EBML header.
var ErrNotMatroska = errors.New("not a matroska file")

// maxTracksSize bounds the Tracks element buffered in memory.
const maxTracksSize = 16 << 20

// Reader walks the Matroska element tree up to the Tracks element and
// returns its subtitle entries. Clusters are never read.
type Reader struct{}

// NewReader returns a native Matroska track reader.
func NewReader() *Reader { return &Reader{} }

// ReadTracks implements media.TrackReader. A file without a Tracks element
// before its first cluster yields no tracks and no error.
func (r *Reader) ReadTracks(f *os.File) ([]media.SubtitleTrack, error) {
	if f == nil {
		return nil, errors.New("mkv read tracks: nil file")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("mkv read tracks: %w", err)
	}
	tracks, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("mkv read tracks %s: %w", f.Name(), err)
	}
	return tracks, nil
}

// Decode reads subtitle tracks from a Matroska stream positioned at the
// EBML header.
func Decode(br *bufio.Reader) ([]media.SubtitleTrack, error) {
	head, err := readHeader(br)
	if err != nil || head.id != idEBML || head.unknown {
		return nil, ErrNotMatroska
	}
	if err := skip(br, head.size); err != nil {
		return nil, err
	}

	for {
		h, err := readHeader(br)
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if h.id == idSegment {
			return readSegment(br, h)
		}
		if h.unknown {
			return nil, fmt.Errorf("element 0x%X with unknown size before segment", h.id)
		}
		if err := skip(br, h.size); err != nil {
			return nil, err
		}
	}
}

func readSegment(br *bufio.Reader, segment header) ([]media.SubtitleTrack, error) {
	// An unknown-size segment extends to the end of the file.
	remaining := segment.size
	bounded := !segment.unknown
	for !bounded || remaining > 0 {
		h, err := readHeader(br)
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case h.id == idCluster:
			return nil, nil
		case h.unknown:
			return nil, fmt.Errorf("segment child 0x%X has unknown size", h.id)
		case h.id == idTracks:
			if h.size > maxTracksSize {
				return nil, fmt.Errorf("tracks element of %d bytes exceeds limit", h.size)
			}
			payload := make([]byte, h.size)
			if _, err := io.ReadFull(br, payload); err != nil {
				return nil, unexpected(err)
			}
			return parseTracks(payload)
		default:
			if err := skip(br, h.size); err != nil {
				return nil, err
			}
		}
		if bounded {
			consumed := h.size + h.length
			if consumed > remaining {
				return nil, fmt.Errorf("segment child 0x%X overruns segment", h.id)
			}
			remaining -= consumed
		}
	}
	return nil, nil
}

func parseTracks(payload []byte) ([]media.SubtitleTrack, error) {
	var tracks []media.SubtitleTrack
	err := walk(payload, func(id uint64, data []byte) error {
		if id != idTrackEntry {
			return nil
		}
		track, kind, err := parseTrackEntry(data)
		if err != nil {
			return err
		}
		if kind == trackTypeSubtitle {
			tracks = append(tracks, track)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}

func parseTrackEntry(data []byte) (media.SubtitleTrack, uint64, error) {
	var (
		track media.SubtitleTrack
		kind  uint64
	)
	err := walk(data, func(id uint64, value []byte) error {
		var err error
		switch id {
		case idTrackType:
			kind, err = readUint(value)
		case idTrackNumber:
			track.Number, err = readUint(value)
		case idLanguage:
			track.Language = readString(value)
		case idLanguageIETF:
			track.LanguageIETF = readString(value)
		case idName:
			track.Name = readString(value)
		case idCodecID:
			track.CodecID = readString(value)
		}
		return err
	})
	return track, kind, err
}

// walk visits each child element of a fully buffered master element.
func walk(data []byte, visit func(id uint64, value []byte) error) error {
	r := bytes.NewReader(data)
	for r.Len() > 0 {
		h, err := readHeader(r)
		if err != nil {
			return unexpected(err)
		}
		if h.unknown || h.size > uint64(r.Len()) {
			return fmt.Errorf("element 0x%X: %w", h.id, io.ErrUnexpectedEOF)
		}
		start := len(data) - r.Len()
		value := data[start : start+int(h.size)]
		if _, err := r.Seek(int64(h.size), io.SeekCurrent); err != nil {
			return err
		}
		if err := visit(h.id, value); err != nil {
			return err
		}
	}
	return nil
}

func skip(br *bufio.Reader, size uint64) error {
	for size > 0 {
		chunk := size
		if chunk > 1<<30 {
			chunk = 1 << 30
		}
		n, err := br.Discard(int(chunk))
		size -= uint64(n)
		if err != nil {
			return unexpected(err)
		}
	}
	return nil
}
