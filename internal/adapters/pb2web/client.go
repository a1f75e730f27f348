// Package pb2web parle aux endpoints historiques du site plazmaburst2.com:
// formulaire de login du site, loader legacy (server.php) et fil d'actualités.
package pb2web

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/app"
)

const (
	DefaultWebsiteURL = "https://www.plazmaburst2.com/"
	DefaultLoaderURL  = "https://www.plazmaburst2.com/pb2/server.php"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0"
	browserAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	flashUserAgent   = "Shockwave Flash"
	flashAccept      = "text/xml, application/xml, application/xhtml+xml, text/html;q=0.9, text/plain;q=0.8, text/css, image/png, image/jpeg, image/gif;q=0.8, application/x-shockwave-flash, video/mp4;q=0.9, flv-application/octet-stream;q=0.8, video/x-flv;q=0.7, audio/mp4, application/futuresplash, */*;q=0.5"
	formContentType  = "application/x-www-form-urlencoded"
)

type Client struct {
	logger     zerolog.Logger
	client     *http.Client
	websiteURL string
	loaderURL  string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		logger:     zerolog.Nop(),
		client:     &http.Client{Timeout: timeout},
		websiteURL: DefaultWebsiteURL,
		loaderURL:  DefaultLoaderURL,
	}
}

func (c *Client) WithWebsiteURL(u string) *Client {
	if strings.TrimSpace(u) != "" {
		c.websiteURL = strings.TrimSpace(u)
	}
	return c
}

func (c *Client) WithLoaderURL(u string) *Client {
	if strings.TrimSpace(u) != "" {
		c.loaderURL = strings.TrimSpace(u)
	}
	return c
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.client = hc
	}
	return c
}

func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger
	return c
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, app.NewCodedError(app.CodeNetwork, req.Method+" "+req.URL.Path, err)
	}
	return resp, nil
}

// readBody décode le gzip à la main: on envoie Accept-Encoding nous-mêmes,
// donc net/http ne le fait pas pour nous.
func readBody(resp *http.Response) (string, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(strings.TrimSpace(resp.Header.Get("Content-Encoding")), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", app.NewCodedError(app.CodeNetwork, "gzip body", err)
		}
		defer gz.Close()
		r = gz
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", app.NewCodedError(app.CodeNetwork, "read body", err)
	}
	return string(b), nil
}

func statusError(resp *http.Response) error {
	return app.NewCodedError(app.CodeHTTPStatus, fmt.Sprintf("%s %s", resp.Request.Method, resp.Request.URL.Path), fmt.Errorf("http error: %s", resp.Status))
}

// get est utilisé par le fil d'actualités.
func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", browserAccept)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", statusError(resp)
	}
	return readBody(resp)
}
