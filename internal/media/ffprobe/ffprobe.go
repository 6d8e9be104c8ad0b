package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"sublime/internal/media"
	"sublime/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Tags      map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON payload.
func Parse(payload []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// SubtitleTracks maps subtitle streams to tracks using the language and
// title tags.
func (r Result) SubtitleTracks() []media.SubtitleTrack {
	var tracks []media.SubtitleTrack
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "subtitle") {
			continue
		}
		tracks = append(tracks, media.SubtitleTrack{
			Number:   uint64(stream.Index),
			Language: tag(stream.Tags, "language"),
			Name:     tag(stream.Tags, "title"),
			CodecID:  stream.CodecName,
		})
	}
	return tracks
}

func tag(tags map[string]string, key string) string {
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

type inspectFunc func(ctx context.Context, binary, path string) (Result, error)

// Reader implements media.TrackReader by shelling out to ffprobe.
type Reader struct {
	Binary  string
	Timeout time.Duration

	inspect inspectFunc
}

// NewReader returns a Reader for the given ffprobe binary.
func NewReader(binary string) *Reader {
	return &Reader{Binary: binary, Timeout: 30 * time.Second, inspect: Inspect}
}

// ReadTracks probes the file by name. The handle itself is not read.
func (r *Reader) ReadTracks(f *os.File) ([]media.SubtitleTrack, error) {
	if f == nil {
		return nil, errors.New("ffprobe read tracks: nil file")
	}
	inspect := r.inspect
	if inspect == nil {
		inspect = Inspect
	}
	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	result, err := inspect(ctx, r.Binary, f.Name())
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "probe", "ffprobe", "Failed to inspect container", err)
	}
	return result.SubtitleTracks(), nil
}
