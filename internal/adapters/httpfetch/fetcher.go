// Package httpfetch télécharge le lecteur, le marqueur de version et le swf.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
)

// maxMarkerBytes borne Fetch: le marqueur est un horodatage texte.
const maxMarkerBytes = 1 << 20

type Fetcher struct {
	logger zerolog.Logger
	client *http.Client
}

func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Fetcher{logger: zerolog.Nop(), client: &http.Client{Timeout: timeout}}
}

func (f *Fetcher) WithHTTPClient(hc *http.Client) *Fetcher {
	if hc != nil {
		f.client = hc
	}
	return f
}

func (f *Fetcher) WithLogger(logger zerolog.Logger) *Fetcher {
	f.logger = logger
	return f
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, app.NewCodedError(app.CodeNetwork, "GET "+url, err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, app.NewCodedError(app.CodeHTTPStatus, "GET "+url, fmt.Errorf("http error: %s", resp.Status))
	}
	return resp, nil
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	// Un octet de plus que la borne pour détecter un contenu tronqué.
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxMarkerBytes+1))
	if err != nil {
		return nil, app.NewCodedError(app.CodeNetwork, "read "+url, err)
	}
	if len(b) > maxMarkerBytes {
		return nil, app.NewCodedError(app.CodeNetwork, "read "+url, fmt.Errorf("body exceeds %d bytes", maxMarkerBytes))
	}
	return b, nil
}

// Download écrit dans un fichier temporaire du dossier cible puis remplace dst.
// Aucun contrôle d'intégrité: le contenu est pris tel quel.
func (f *Fetcher) Download(ctx context.Context, url, dst string, mode os.FileMode) (int64, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, filepath.Base(dst)+".part-*")
	if err != nil {
		return 0, app.NewCodedError(app.CodeIO, "create temp file", err)
	}
	tmpName := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return n, app.NewCodedError(app.CodeNetwork, "read "+url, err)
	}
	if err := tmp.Close(); err != nil {
		return n, app.NewCodedError(app.CodeIO, "close temp file", err)
	}
	// CreateTemp crée en 0600.
	if err := os.Chmod(tmpName, mode); err != nil {
		return n, app.NewCodedError(app.CodeIO, "chmod "+filepath.Base(dst), err)
	}
	if err := replaceFile(tmpName, dst); err != nil {
		return n, app.NewCodedError(app.CodeIO, "replace "+filepath.Base(dst), err)
	}

	success = true
	f.logger.Debug().Str("url", url).Str("path", dst).Int64("bytes", n).Msg("file written")
	return n, nil
}
