package media

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"

	"videomind/internal/app/errors"
	"videomind/internal/app/model"
)

// PageDownloader handles plain web pages that expose their video through
// OpenGraph tags. It scrapes og:video (and og:title / og:site_name for
// metadata) and downloads the referenced media file directly.
type PageDownloader struct {
	client *http.Client
}

func NewPageDownloader() *PageDownloader {
	return &PageDownloader{client: http.DefaultClient}
}

func (p *PageDownloader) Fetch(ctx context.Context, pageURL string, destDir string) (*model.VideoInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build page request failed")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "fetch page %s: %v", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "fetch page %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse page failed")
	}

	mediaURL := metaContent(doc, "og:video")
	if mediaURL == "" {
		mediaURL = metaContent(doc, "og:video:url")
	}
	if mediaURL == "" {
		return nil, errors.Wrapf(errors.ErrUnsupportedSource, "no og:video tag on %s", pageURL)
	}

	title := metaContent(doc, "og:title")
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	if title == "" {
		title = "Unknown"
	}

	source := metaContent(doc, "og:site_name")
	if source == "" {
		if u, err := url.Parse(pageURL); err == nil {
			source = u.Hostname()
		} else {
			source = "unknown"
		}
	}

	filePath, err := p.downloadMedia(ctx, mediaURL, destDir)
	if err != nil {
		return nil, err
	}

	duration, err := GetDuration(filePath)
	if err != nil {
		duration = 0
	}

	return &model.VideoInfo{
		Title:    title,
		Duration: duration,
		Source:   source,
		FilePath: filePath,
	}, nil
}

func (p *PageDownloader) downloadMedia(ctx context.Context, mediaURL string, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "build media request failed")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnsupportedSource, "download media %s: %v", mediaURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(errors.ErrUnsupportedSource, "download media %s: status %d", mediaURL, resp.StatusCode)
	}

	name := "video.mp4"
	if u, err := url.Parse(mediaURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			name = base
		}
	}
	filePath := filepath.Join(destDir, name)

	out, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrap(err, "create media file failed")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", errors.Wrap(err, "write media file failed")
	}
	return filePath, nil
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return content
}
