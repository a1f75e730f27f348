package pb2web

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

var (
	reAlert        = regexp.MustCompile(`alert\(['"](.*?)['"]\)`)
	reEscapedBreak = regexp.MustCompile(`\\n\\n|\\n`)
)

// PasswordDigest renvoie le mot de passe tel qu'envoyé au formulaire du site:
// inchangé s'il est déjà un MD5 hexadécimal, sinon son MD5.
func PasswordDigest(password string) string {
	if domain.IsMD5Digest(password) {
		return password
	}
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// LoginWebsite poste le formulaire de login du site et classe la page renvoyée.
// Seuls un échec réseau ou un statut != 200 sont des erreurs.
func (c *Client) LoginWebsite(ctx context.Context, creds domain.Credentials) (string, error) {
	form := url.Values{}
	form.Set("login", creds.Username)
	form.Set("password", PasswordDigest(creds.Password))
	form.Set("Submit", "Log-in")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.websiteURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", browserAccept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Content-Type", formContentType)
	if origin := originOf(c.websiteURL); origin != "" {
		req.Header.Set("Origin", origin)
		req.Header.Set("Referer", origin+"/")
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}
	body, err := readBody(resp)
	if err != nil {
		return "", err
	}

	msg, kind := ClassifyWebsiteResponse(body)
	c.logger.Debug().Str("classification", kind).Str("user", creds.Username).Msg("website login response")
	return msg, nil
}

// ClassifyWebsiteResponse applique l'ordre historique: boîte de bienvenue,
// puis alert() JavaScript, puis message "pas de connexion".
func ClassifyWebsiteResponse(body string) (message string, kind string) {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
		if box := doc.Find("td#wb_box").First(); box.Length() > 0 {
			text := strings.TrimSpace(strings.Join(textNodes(box.Nodes[0]), " "))
			if i := strings.IndexByte(text, '!'); i >= 0 {
				return text[:i+1], "welcome"
			}
		}
	}

	if m := reAlert.FindStringSubmatch(body); m != nil {
		msg := reEscapedBreak.ReplaceAllString(m[1], "\r\n")
		return strings.ReplaceAll(msg, `\`, ""), "alert"
	}

	return domain.NoConnectionMessage, "fallthrough"
}

// textNodes collecte les nœuds texte descendants dans l'ordre du document.
func textNodes(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				out = append(out, c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
