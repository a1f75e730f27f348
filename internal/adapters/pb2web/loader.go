package pb2web

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// LoginLoader reproduit la requête "rq=load" du client Flash embarqué.
// Le corps est renvoyé tel quel sur 200; il commence par "x" quand le login est accepté.
func (c *Client) LoginLoader(ctx context.Context, creds domain.Credentials) (string, error) {
	form := url.Values{}
	form.Set("rq", "load")
	form.Set("l", creds.Username)
	form.Set("p", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loaderURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", flashUserAgent)
	req.Header.Set("Accept", flashAccept)
	req.Header.Set("Content-Type", formContentType)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("loader login rejected")
		return domain.LoaderFailedMessage, nil
	}
	return readBody(resp)
}
