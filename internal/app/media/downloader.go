package media

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"os/exec"
	"path/filepath"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
)

// Downloader fetches a source video into destDir and reports its metadata.
type Downloader interface {
	Fetch(ctx context.Context, url string, destDir string) (*model.VideoInfo, error)
}

// YtDlpDownloader shells out to the yt-dlp executable. When the URL is not a
// supported platform, it falls back to scraping the page's OpenGraph video
// tags if a fallback is configured.
type YtDlpDownloader struct {
	binary   string
	fallback *PageDownloader
}

// NewYtDlpDownloader creates a downloader with the OpenGraph page fallback
// enabled.
func NewYtDlpDownloader() *YtDlpDownloader {
	return &YtDlpDownloader{
		binary:   "yt-dlp",
		fallback: NewPageDownloader(),
	}
}

// ytDlpInfo is the subset of yt-dlp's JSON info dict we consume.
type ytDlpInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Extractor string  `json:"extractor"`
	Filename  string  `json:"_filename"`
}

func (d *YtDlpDownloader) Fetch(ctx context.Context, url string, destDir string) (*model.VideoInfo, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create download dir failed")
	}

	info, err := d.runYtDlp(ctx, url, destDir)
	if err == nil {
		return info, nil
	}

	if d.fallback != nil {
		if fbInfo, fbErr := d.fallback.Fetch(ctx, url, destDir); fbErr == nil {
			return fbInfo, nil
		}
	}
	return nil, err
}

func (d *YtDlpDownloader) runYtDlp(ctx context.Context, url string, destDir string) (*model.VideoInfo, error) {
	if _, err := exec.LookPath(d.binary); err != nil {
		return nil, errors.Wrap(err, "yt-dlp executable not found")
	}

	outTmpl := filepath.Join(destDir, "%(id)s.%(ext)s")
	cmd := exec.CommandContext(ctx, d.binary,
		"--no-warnings",
		"--quiet",
		"--print-json",
		"-f", "best[ext=mp4]/best",
		"-o", outTmpl,
		url,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "yt-dlp failed for %s: %v, stderr: %s", url, err, stderr.String())
	}

	var info ytDlpInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, errors.Wrap(err, "decode yt-dlp output failed")
	}
	if info.Filename == "" {
		return nil, errors.New("yt-dlp reported no output file")
	}

	title := info.Title
	if title == "" {
		title = "Unknown"
	}
	source := info.Extractor
	if source == "" {
		source = "unknown"
	}

	return &model.VideoInfo{
		Title:    title,
		Duration: int(math.Round(info.Duration)),
		Source:   source,
		FilePath: info.Filename,
	}, nil
}
