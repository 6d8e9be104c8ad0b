package testsupport

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Matroska track types.
const (
	MKVTrackVideo    = 0x01
	MKVTrackAudio    = 0x02
	MKVTrackSubtitle = 0x11
)

// MKVTrack describes one TrackEntry written by BuildMKV.
type MKVTrack struct {
	Type         uint8
	Language     string
	LanguageIETF string
	Name         string
	CodecID      string
}

// MKVOptions controls the synthetic file layout.
type MKVOptions struct {
	// UnknownSegmentSize writes the reserved all-ones size on the Segment.
	UnknownSegmentSize bool
	// ClusterBytes appends a Cluster of this many payload bytes after Tracks.
	ClusterBytes int
}

// BuildMKV encodes a minimal Matroska stream: EBML header, Segment, Info,
// Tracks, and an optional Cluster. Short payloads get 1-byte sizes and the
// rest 8-byte sizes so both encodings are exercised.
func BuildMKV(tracks []MKVTrack, opts MKVOptions) []byte {
	header := element(0x1A45DFA3,
		element(0x4282, []byte("matroska")),
	)

	var entries []byte
	for i, track := range tracks {
		var body []byte
		body = append(body, element(0xD7, []byte{byte(i + 1)})...)
		body = append(body, element(0x83, []byte{track.Type})...)
		if track.CodecID != "" {
			body = append(body, element(0x86, []byte(track.CodecID))...)
		}
		if track.Language != "" {
			body = append(body, element(0x22B59C, []byte(track.Language))...)
		}
		if track.LanguageIETF != "" {
			body = append(body, element(0x22B59D, []byte(track.LanguageIETF))...)
		}
		if track.Name != "" {
			body = append(body, element(0x536E, []byte(track.Name))...)
		}
		entries = append(entries, element(0xAE, body)...)
	}

	var segmentBody []byte
	segmentBody = append(segmentBody, element(0x1549A966, element(0x2AD7B1, []byte{0x0F, 0x42, 0x40}))...)
	segmentBody = append(segmentBody, element(0x1654AE6B, entries)...)
	if opts.ClusterBytes > 0 {
		segmentBody = append(segmentBody, element(0x1F43B675, make([]byte, opts.ClusterBytes))...)
	}

	out := append([]byte(nil), header...)
	if opts.UnknownSegmentSize {
		out = append(out, idBytes(0x18538067)...)
		out = append(out, 0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
		return append(out, segmentBody...)
	}
	return append(out, element(0x18538067, segmentBody)...)
}

// WriteMKV writes a synthetic Matroska file and returns its path.
func WriteMKV(t testing.TB, path string, tracks []MKVTrack, opts MKVOptions) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, BuildMKV(tracks, opts), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func element(id uint32, payload []byte) []byte {
	out := idBytes(id)
	if len(payload) < 0x7F {
		out = append(out, 0x80|byte(len(payload)))
		return append(out, payload...)
	}
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(payload)))
	size[0] = 0x01
	out = append(out, size[:]...)
	return append(out, payload...)
}

func idBytes(id uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], id)
	i := 0
	for i < 3 && buf[i] == 0 {
		i++
	}
	return append([]byte(nil), buf[i:]...)
}
