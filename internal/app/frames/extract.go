package frames

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Frame is one sampled image from the video's visual track. Ordinal is the
// 1-indexed extraction position recovered from the filename; it survives
// deduplication so the frame keeps its original temporal position.
type Frame struct {
	Path    string
	Ordinal int
}

// Timestamp derives the frame's position in seconds from its extraction
// ordinal and the sampling interval.
func (f Frame) Timestamp(intervalSeconds int) float64 {
	return float64((f.Ordinal - 1) * intervalSeconds)
}

// Extract samples one frame every intervalSeconds from the video into
// outputDir as sequentially numbered JPEGs. One-shot: re-running against the
// same directory overwrites the sequence.
func Extract(ctx context.Context, videoPath string, outputDir string, intervalSeconds int) ([]Frame, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%d", intervalSeconds),
		"-q:v", "2",
		"-y",
		filepath.Join(outputDir, "frame_%04d.jpg"),
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return List(outputDir)
}

// List returns the extracted frames in outputDir ordered by their ordinal.
func List(outputDir string) ([]Frame, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}

	result := make([]Frame, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "frame_") || !strings.HasSuffix(name, ".jpg") {
			continue
		}
		ordinal, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "frame_"), ".jpg"))
		if err != nil {
			continue
		}
		result = append(result, Frame{
			Path:    filepath.Join(outputDir, name),
			Ordinal: ordinal,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Ordinal < result[j].Ordinal })
	return result, nil
}
