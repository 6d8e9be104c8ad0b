package video

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sublime/internal/language"
	"sublime/internal/media"
	"sublime/internal/media/mkv"
	"sublime/internal/media/signature"
	"sublime/internal/services"
	"sublime/internal/testsupport"
)

func classifiedVideo(t *testing.T, path string, sig signature.Signature) *Video {
	t.Helper()
	v, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	v.signature = sig
	return v
}

func TestHasSubtitleEmbedded(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "movie.mkv"), signature.Matroska)
	reader := &fakeReader{tracks: []media.SubtitleTrack{
		{Language: "klingon"},
		{Name: "not a language"},
		{Language: "ger"},
		{Name: "French"},
	}}
	resolver := NewResolver(&fakeProbe{}, reader, language.NewCatalog(), nil)

	tests := []struct {
		lang string
		want bool
	}{
		{"de", true},
		{"fr", true},
		{"en", false},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got, err := resolver.HasSubtitle(v, language.MustParse(tt.lang))
			if err != nil {
				t.Fatalf("HasSubtitle: %v", err)
			}
			if got != tt.want {
				t.Fatalf("HasSubtitle(%s) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestHasSubtitleSkipsEmbeddedForOtherSignatures(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "movie.mp4"), "video/mp4")
	reader := &fakeReader{tracks: []media.SubtitleTrack{{Language: "eng"}}}
	resolver := NewResolver(&fakeProbe{}, reader, language.NewCatalog(), nil)

	got, err := resolver.HasSubtitle(v, language.MustParse("en"))
	if err != nil {
		t.Fatal(err)
	}
	if got || reader.calls != 0 {
		t.Fatalf("embedded tracks consulted for non-container signature (got=%v calls=%d)", got, reader.calls)
	}
}

func TestHasSubtitleToleratesMalformedContainer(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "movie.mkv"), signature.Matroska)
	reader := &fakeReader{err: errors.New("truncated EBML")}
	resolver := NewResolver(&fakeProbe{}, reader, language.NewCatalog(), nil)

	got, err := resolver.HasSubtitle(v, language.MustParse("en"))
	if err != nil {
		t.Fatalf("malformed container must not fail the check: %v", err)
	}
	if got {
		t.Fatal("expected no subtitle")
	}

	touch(t, filepath.Join(dir, "movie.en.srt"))
	got, err = resolver.HasSubtitle(v, language.MustParse("en"))
	if err != nil || !got {
		t.Fatalf("sidecar must still be found after reader failure: %v, %v", got, err)
	}
}

func TestHasSubtitleWithNativeReader(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteMKV(t, filepath.Join(dir, "show.mkv"), []testsupport.MKVTrack{
		{Type: testsupport.MKVTrackVideo, CodecID: "V_MPEG4/ISO/AVC"},
		{Type: testsupport.MKVTrackSubtitle, CodecID: "S_TEXT/UTF8", Language: "spa"},
	}, testsupport.MKVOptions{ClusterBytes: 64})
	v := classifiedVideo(t, path, signature.Matroska)
	resolver := NewResolver(signature.NewProbe(), mkv.NewReader(), language.NewCatalog(), nil)

	got, err := resolver.HasSubtitle(v, language.MustParse("Spanish"))
	if err != nil || !got {
		t.Fatalf("HasSubtitle(es) = %v, %v; want true", got, err)
	}
	got, err = resolver.HasSubtitle(v, language.MustParse("it"))
	if err != nil || got {
		t.Fatalf("HasSubtitle(it) = %v, %v; want false", got, err)
	}
}

func TestHasSubtitleSidecars(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "Movie [2019] *cut*.avi"), "video/x-msvideo")
	resolver := NewResolver(&fakeProbe{}, nil, language.NewCatalog(), nil)

	touch(t, filepath.Join(dir, "Movie [2019] *cut*.fr.srt"))
	touch(t, filepath.Join(dir, "Movie [2019] *cut*.nl.SRT"))
	touch(t, filepath.Join(dir, "Movie [2019] *cut*.de.zip"))
	touch(t, filepath.Join(dir, "Movie [2019] *cut*.deu.srt"))
	touch(t, filepath.Join(dir, "Movie [2019] *cut*.haw.ass"))
	touch(t, filepath.Join(dir, "Movie 2019 cut.it.srt"))
	if err := os.Mkdir(filepath.Join(dir, "Movie [2019] *cut*.es.srt"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lang string
		want bool
	}{
		{"fr", true},
		{"nl", false},  // extension match is case-sensitive
		{"de", false},  // .zip is not a subtitle; .deu is not the best code
		{"haw", true},  // no 2-letter form, 3-letter code used
		{"it", false},  // base name must match literally
		{"es", false},  // directories never count
		{"en", false},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got, err := resolver.HasSubtitle(v, language.MustParse(tt.lang))
			if err != nil {
				t.Fatalf("HasSubtitle: %v", err)
			}
			if got != tt.want {
				t.Fatalf("HasSubtitle(%s) = %v, want %v", tt.lang, got, tt.want)
			}
		})
	}
}

func TestExistingReportsSources(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "movie.mkv"), signature.Matroska)
	touch(t, filepath.Join(dir, "movie.en.srt"))
	touch(t, filepath.Join(dir, "movie.en.forced.ass"))
	reader := &fakeReader{tracks: []media.SubtitleTrack{{Language: "eng", Name: "English SDH"}}}
	resolver := NewResolver(&fakeProbe{}, reader, language.NewCatalog(), nil)

	presence, err := resolver.Existing(v, language.MustParse("eng"))
	if err != nil {
		t.Fatal(err)
	}
	if !presence.Embedded || presence.Track.Name != "English SDH" {
		t.Fatalf("unexpected embedded presence %+v", presence)
	}
	want := []string{filepath.Join(dir, "movie.en.forced.ass"), filepath.Join(dir, "movie.en.srt")}
	if len(presence.Sidecars) != 2 || presence.Sidecars[0] != want[0] || presence.Sidecars[1] != want[1] {
		t.Fatalf("sidecars = %v, want %v", presence.Sidecars, want)
	}
	if !presence.Found() {
		t.Fatal("Found() must be true")
	}
}

func TestHasSubtitleEnumerationFailure(t *testing.T) {
	dir := t.TempDir()
	v := classifiedVideo(t, writeVideo(t, dir, "movie.avi"), "video/x-msvideo")
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	resolver := NewResolver(&fakeProbe{}, nil, language.NewCatalog(), nil)

	_, err := resolver.HasSubtitle(v, language.MustParse("en"))
	if !errors.Is(err, services.ErrEnumeration) {
		t.Fatalf("error = %v, want ErrEnumeration", err)
	}
}
