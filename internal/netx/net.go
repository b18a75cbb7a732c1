// Package netx holds small HTTP helpers of the CLI.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DownloadPresignedURL streams the object behind a presigned GET url into w
// and returns the number of bytes written.
func DownloadPresignedURL(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("download interrupted: %w", err)
	}
	return n, nil
}
