package loader

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
)

func openFile(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "markup loader: open %s", path)
	}
	return f, nil
}

func openFS(files fs.FS) strategy {
	return func(_ context.Context, name string) (io.ReadCloser, error) {
		f, err := files.Open(name)
		if err != nil {
			return nil, errors.Wrapf(err, "markup loader: open %s", name)
		}
		return f, nil
	}
}

func fetch(client *http.Client) strategy {
	return func(ctx context.Context, url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "markup loader: build request for %s", url)
		}
		req.Header.Set("Accept", "text/html, application/xhtml+xml;q=0.9, */*;q=0.1")

		resp, err := client.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "markup loader: fetch %s", url)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, errors.Newf("markup loader: unexpected status %s from %s", resp.Status, url)
		}
		return resp.Body, nil
	}
}
