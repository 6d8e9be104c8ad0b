package mkv

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sublime/internal/testsupport"
)

func sampleTracks() []testsupport.MKVTrack {
	return []testsupport.MKVTrack{
		{Type: testsupport.MKVTrackVideo, CodecID: "V_MPEG4/ISO/AVC", Language: "und"},
		{Type: testsupport.MKVTrackAudio, CodecID: "A_AAC", Language: "fre"},
		{Type: testsupport.MKVTrackSubtitle, CodecID: "S_TEXT/UTF8", Language: "eng", Name: "English"},
		{Type: testsupport.MKVTrackSubtitle, CodecID: "S_TEXT/ASS", LanguageIETF: "pt-BR"},
		{Type: testsupport.MKVTrackSubtitle, CodecID: "S_HDMV/PGS", Name: "Français"},
	}
}

func TestReadTracksReturnsSubtitleTracksOnly(t *testing.T) {
	path := testsupport.WriteMKV(t, filepath.Join(t.TempDir(), "movie.mkv"), sampleTracks(), testsupport.MKVOptions{ClusterBytes: 4096})
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tracks, err := NewReader().ReadTracks(f)
	if err != nil {
		t.Fatalf("ReadTracks: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 subtitle tracks, got %d: %+v", len(tracks), tracks)
	}
	if tracks[0].Language != "eng" || tracks[0].Name != "English" || tracks[0].CodecID != "S_TEXT/UTF8" || tracks[0].Number != 3 {
		t.Fatalf("unexpected first track: %+v", tracks[0])
	}
	if tracks[1].Language != "" || tracks[1].LanguageIETF != "pt-BR" {
		t.Fatalf("unexpected second track: %+v", tracks[1])
	}
	if tracks[2].Language != "" || tracks[2].Name != "Français" {
		t.Fatalf("absent language must stay empty: %+v", tracks[2])
	}
}

func TestDecodeUnknownSizeSegment(t *testing.T) {
	data := testsupport.BuildMKV(sampleTracks(), testsupport.MKVOptions{UnknownSegmentSize: true, ClusterBytes: 16})
	tracks, err := Decode(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
}

func TestDecodeWithoutSubtitles(t *testing.T) {
	data := testsupport.BuildMKV([]testsupport.MKVTrack{{Type: testsupport.MKVTrackVideo}}, testsupport.MKVOptions{})
	tracks, err := Decode(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %+v", tracks)
	}
}

func TestDecodeRejectsNonEBML(t *testing.T) {
	_, err := Decode(bufio.NewReader(bytes.NewReader([]byte("RIFF....AVI LIST"))))
	if !errors.Is(err, ErrNotMatroska) {
		t.Fatalf("expected ErrNotMatroska, got %v", err)
	}
}

func TestDecodeTruncatedTracks(t *testing.T) {
	data := testsupport.BuildMKV(sampleTracks(), testsupport.MKVOptions{})
	_, err := Decode(bufio.NewReader(bytes.NewReader(data[:len(data)-10])))
	if err == nil {
		t.Fatal("expected error for truncated tracks element")
	}
}

func TestReadVint(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		marker  bool
		value   uint64
		length  int
		unknown bool
	}{
		{"one byte size", []byte{0x81}, false, 1, 1, false},
		{"two byte size", []byte{0x40, 0x02}, false, 2, 2, false},
		{"unknown size", []byte{0xFF}, false, 0x7F, 1, true},
		{"id keeps marker", []byte{0x1A, 0x45, 0xDF, 0xA3}, true, idEBML, 4, false},
		{"eight byte unknown", []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, false, 0x00FFFFFFFFFFFFFF, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, length, unknown, err := readVint(bytes.NewReader(tt.input), tt.marker)
			if err != nil {
				t.Fatalf("readVint: %v", err)
			}
			if value != tt.value || length != tt.length || unknown != tt.unknown {
				t.Fatalf("got (%#x, %d, %v), want (%#x, %d, %v)", value, length, unknown, tt.value, tt.length, tt.unknown)
			}
		})
	}

	if _, _, _, err := readVint(bytes.NewReader([]byte{0x00}), false); !errors.Is(err, errInvalidVint) {
		t.Fatalf("expected errInvalidVint, got %v", err)
	}
}
