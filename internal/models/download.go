// Package models downloads whisper.cpp ggml models from HuggingFace.
package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultBaseURL is the HuggingFace repository serving ggml whisper models.
const DefaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// DefaultModel is the model used when none is named.
const DefaultModel = "large-v3"

var modelNameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]*$`)

// FileName returns the ggml file name for a model name such as "base" or
// "large-v3".
func FileName(name string) (string, error) {
	if !modelNameRE.MatchString(name) {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return "ggml-" + name + ".bin", nil
}

// Downloader fetches models into Dir.
type Downloader struct {
	BaseURL string
	Dir     string
	Client  *http.Client
	Out     io.Writer // progress output
}

// NewDownloader returns a Downloader writing into dir with progress on out.
func NewDownloader(dir string, out io.Writer) *Downloader {
	return &Downloader{
		BaseURL: DefaultBaseURL,
		Dir:     dir,
		Client:  http.DefaultClient,
		Out:     out,
	}
}

// Download fetches the named model and returns its path. An existing
// non-empty file is kept.
func (d *Downloader) Download(ctx context.Context, name string) (string, error) {
	fileName, err := FileName(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating models dir: %w", err)
	}

	destPath := filepath.Join(d.Dir, fileName)

	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		fmt.Fprintf(d.Out, "  Model already exists: %s (%.0f MB)\n", destPath, float64(info.Size())/(1024*1024))
		return destPath, nil
	}

	url := d.BaseURL + "/" + fileName
	fmt.Fprintf(d.Out, "  Downloading %s\n", url)
	fmt.Fprintf(d.Out, "  Destination: %s\n", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	// Write to temp file first, then rename.
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	pw := &progressWriter{
		writer: f,
		out:    d.Out,
		total:  resp.ContentLength,
		label:  fileName,
	}

	written, err := io.Copy(pw, resp.Body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing model file: %w", err)
	}

	fmt.Fprintf(d.Out, "\n  Downloaded %.1f MB\n", float64(written)/(1024*1024))

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("moving model file: %w", err)
	}

	return destPath, nil
}

// progressWriter wraps an io.Writer and prints download progress.
type progressWriter struct {
	writer  io.Writer
	out     io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			pw.label,
			float64(pw.written)/(1024*1024),
			float64(pw.total)/(1024*1024),
			pct)
	} else {
		fmt.Fprintf(pw.out, "\r  %s: %.1f MB downloaded",
			pw.label,
			float64(pw.written)/(1024*1024))
	}
	return n, err
}
