package signature

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// Signature is the MIME type detected for a video file.
type Signature string

// Matroska is the signature of MKV containers, the only format whose
// embedded subtitle tracks are inspected.
const Matroska Signature = "video/x-matroska"

// Unsniffed is returned for files whose extension is a video extension but
// whose header matches no known content type.
const Unsniffed Signature = "application/octet-stream"

// ErrNotRecognized reports a file that is not a video.
var ErrNotRecognized = errors.New("file not recognized as video")

// headerSize covers every matcher registered with filetype.
const headerSize = 8192

// Probe identifies video files by extension and content header.
type Probe struct{}

// NewProbe returns a Probe.
func NewProbe() *Probe { return &Probe{} }

// Signature returns the content signature of path, or ErrNotRecognized when
// the extension is not a video extension, the file is empty, or its header
// identifies a non-video type.
func (p *Probe) Signature(path string) (Signature, error) {
	if !IsVideoExtension(path) {
		return "", fmt.Errorf("%w: extension %q", ErrNotRecognized, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read header: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: empty file", ErrNotRecognized)
	}

	kind, err := filetype.Match(header[:n])
	if err != nil {
		return "", fmt.Errorf("sniff header: %w", err)
	}
	if kind == filetype.Unknown {
		return Unsniffed, nil
	}
	if kind.MIME.Type != "video" && !oggContainer(kind.MIME.Value) {
		return "", fmt.Errorf("%w: content is %s", ErrNotRecognized, kind.MIME.Value)
	}
	return Signature(kind.MIME.Value), nil
}

// oggContainer accepts Ogg streams, which filetype classifies as audio even
// when they carry Theora video.
func oggContainer(mime string) bool {
	return mime == "audio/ogg" || mime == "application/ogg"
}

// IsContainerFormat reports whether embedded subtitle tracks can be listed
// for files with this signature.
func (p *Probe) IsContainerFormat(sig Signature) bool {
	return sig == Matroska
}
