package app

import (
	"context"
	"regexp"
	"strings"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

// NewsLinkBase sert à résoudre les liens relatifs du fil d'actualités.
const NewsLinkBase = "https://plazmaburst2.com"

var reNewsLink = regexp.MustCompile(`<a href="(.*?)">(.*?)</a>`)

type NewsSource interface {
	NewsPage(ctx context.Context, page int) ([]domain.NewsItem, error)
	NewsPageCount(ctx context.Context) (int, error)
}

type NewsPage struct {
	Page  int            `json:"page"`
	Items []NewsEntryDTO `json:"items"`
}

type NewsEntryDTO struct {
	Date     string               `json:"date"`
	Text     string               `json:"text"`
	Segments []domain.NewsSegment `json:"segments"`
}

type NewsService struct {
	source NewsSource
}

func NewNewsService(source NewsSource) *NewsService {
	return &NewsService{source: source}
}

func (s *NewsService) Page(ctx context.Context, page int) (NewsPage, error) {
	if page < 0 {
		page = 0
	}
	items, err := s.source.NewsPage(ctx, page)
	if err != nil {
		return NewsPage{}, err
	}
	out := NewsPage{Page: page, Items: make([]NewsEntryDTO, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, NewsEntryDTO{Date: it.Date, Text: it.Text, Segments: SplitLinks(it.Text)})
	}
	return out, nil
}

func (s *NewsService) PageCount(ctx context.Context) (int, error) {
	return s.source.NewsPageCount(ctx)
}

// SplitLinks découpe un texte d'actualité en segments texte/lien, dans l'ordre.
func SplitLinks(text string) []domain.NewsSegment {
	var out []domain.NewsSegment
	last := 0
	for _, m := range reNewsLink.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			out = append(out, domain.NewsSegment{Kind: domain.SegmentText, Text: text[last:m[0]]})
		}
		out = append(out, domain.NewsSegment{
			Kind: domain.SegmentLink,
			Text: text[m[4]:m[5]],
			URL:  resolveNewsURL(text[m[2]:m[3]]),
		})
		last = m[1]
	}
	if last < len(text) {
		out = append(out, domain.NewsSegment{Kind: domain.SegmentText, Text: text[last:]})
	}
	return out
}

func resolveNewsURL(href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return NewsLinkBase + href
	default:
		return NewsLinkBase + "/" + href
	}
}
