package video

import (
	"os"
	"path/filepath"
	"testing"

	"sublime/internal/identification"
	"sublime/internal/media"
	"sublime/internal/media/signature"
)

type fakeProbe struct {
	signatures map[string]signature.Signature
	err        error
}

func (p *fakeProbe) Signature(path string) (signature.Signature, error) {
	if p.err != nil {
		return "", p.err
	}
	if sig, ok := p.signatures[filepath.Base(path)]; ok {
		return sig, nil
	}
	return "", signature.ErrNotRecognized
}

func (p *fakeProbe) IsContainerFormat(sig signature.Signature) bool {
	return sig == signature.Matroska
}

type fakeGuesser struct {
	results map[string]identification.Result
}

func (g *fakeGuesser) Guess(path string) identification.Result {
	if res, ok := g.results[filepath.Base(path)]; ok {
		return res
	}
	return identification.Result{Kind: identification.KindUnknown}
}

type fakeReader struct {
	tracks []media.SubtitleTrack
	err    error
	calls  int
}

func (r *fakeReader) ReadTracks(*os.File) ([]media.SubtitleTrack, error) {
	r.calls++
	return r.tracks, r.err
}

func writeVideo(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("video-bytes"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nhi\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
