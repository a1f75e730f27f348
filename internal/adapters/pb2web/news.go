package pb2web

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// NewsPage récupère une page (0-indexée) du fil d'actualités du site.
func (c *Client) NewsPage(ctx context.Context, page int) ([]domain.NewsItem, error) {
	if page < 0 {
		page = 0
	}
	body, err := c.get(ctx, fmt.Sprintf("%s?a=&s=0&pg=%d", c.websiteURL, page))
	if err != nil {
		return nil, err
	}
	return ParseNews(body)
}

// NewsPageCount renvoie le nombre de pages d'actualités (dernier numéro de pagination + 1).
func (c *Client) NewsPageCount(ctx context.Context) (int, error) {
	body, err := c.get(ctx, c.websiteURL)
	if err != nil {
		return 0, err
	}
	return ParseNewsPageCount(body)
}

func ParseNews(body string) ([]domain.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse news html: %w", err)
	}

	items := []domain.NewsItem{}
	doc.Find("strong.news_date").Each(func(_ int, s *goquery.Selection) {
		date, _ := s.Html()
		var b strings.Builder
	siblings:
		for n := s.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
			switch n.Type {
			case html.TextNode:
				b.WriteString(n.Data)
			case html.ElementNode:
				el := goquery.NewDocumentFromNode(n).Selection
				class, _ := el.Attr("class")
				align, _ := el.Attr("align")
				switch {
				case n.Data == "div" && (align == "center" || class == "news_div"):
					break siblings
				case n.Data == "br":
					b.WriteByte('\n')
				case n.Data == "a":
					if href, ok := el.Attr("href"); ok {
						inner, _ := el.Html()
						fmt.Fprintf(&b, `<a href="%s">%s</a>`, href, inner)
					}
				default:
					inner, _ := el.Html()
					b.WriteString(inner)
				}
			}
		}
		items = append(items, domain.NewsItem{Date: date, Text: cleanNewsText(b.String())})
	})
	return items, nil
}

// cleanNewsText applique les remplacements dans l'ordre: chacun voit le résultat du précédent.
func cleanNewsText(s string) string {
	s = strings.ReplaceAll(s, "\t", "")
	s = strings.ReplaceAll(s, "\n\n", "\n")
	s = strings.ReplaceAll(s, "</a>.\n", "</a>")
	s = strings.ReplaceAll(s, "</a>!", "</a>")
	s = strings.ReplaceAll(s, "</a>.", "</a>")
	return s
}

func ParseNewsPageCount(body string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("parse news html: %w", err)
	}
	maxPage := 0
	doc.Find("div > a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		last := href[strings.LastIndex(href, "=")+1:]
		if n, err := strconv.ParseUint(last, 10, 8); err == nil && int(n) > maxPage {
			maxPage = int(n)
		}
	})
	return maxPage + 1, nil
}
