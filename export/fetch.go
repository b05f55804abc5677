package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// fetchFunc resolves a clip source into a local file inside the scratch
// directory. index -1 marks the music track.
type fetchFunc func(ctx context.Context, scratchDir string, index int, source string) (string, error)

// fetchSource treats http(s) URIs as downloads and anything else as a local
// path used in place.
func fetchSource(ctx context.Context, scratchDir string, index int, source string) (string, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		if _, err := os.Stat(source); err != nil {
			return "", fmt.Errorf("source file: %w", err)
		}
		return source, nil
	}

	name := fmt.Sprintf("in_%03d%s", index, downloadExt(source))
	if index < 0 {
		name = "music" + downloadExt(source)
	}
	local := filepath.Join(scratchDir, name)
	if err := downloadFile(ctx, source, local); err != nil {
		return "", err
	}
	return local, nil
}

func downloadFile(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: status %d", resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func downloadExt(source string) string {
	ext := filepath.Ext(source)
	if ext == "" || len(ext) > 5 {
		return ".mp4"
	}
	return ext
}
