package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/domain"
)

func TestSplitLinks(t *testing.T) {
	text := `Play <a href="/?a=maps">maps</a> or <a href="https://x.test/y">y</a> and <a href="forum">the forum</a>!`
	got := SplitLinks(text)
	want := []domain.NewsSegment{
		{Kind: domain.SegmentText, Text: "Play "},
		{Kind: domain.SegmentLink, Text: "maps", URL: "https://plazmaburst2.com/?a=maps"},
		{Kind: domain.SegmentText, Text: " or "},
		{Kind: domain.SegmentLink, Text: "y", URL: "https://x.test/y"},
		{Kind: domain.SegmentText, Text: " and "},
		{Kind: domain.SegmentLink, Text: "the forum", URL: "https://plazmaburst2.com/forum"},
		{Kind: domain.SegmentText, Text: "!"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments:\n%+v", got)
	}
	if SplitLinks("") != nil {
		t.Fatalf("empty text should yield no segment")
	}
}

type fakeNews struct {
	page  int
	items []domain.NewsItem
}

func (f *fakeNews) NewsPage(ctx context.Context, page int) ([]domain.NewsItem, error) {
	f.page = page
	return f.items, nil
}

func (f *fakeNews) NewsPageCount(ctx context.Context) (int, error) { return 5, nil }

func TestNewsService_Page(t *testing.T) {
	src := &fakeNews{items: []domain.NewsItem{{Date: "today", Text: `see <a href="/x">x</a>`}}}
	svc := NewNewsService(src)

	page, err := svc.Page(context.Background(), -2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if src.page != 0 || page.Page != 0 {
		t.Fatalf("negative page should clamp to 0")
	}
	if len(page.Items) != 1 || len(page.Items[0].Segments) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if n, _ := svc.PageCount(context.Background()); n != 5 {
		t.Fatalf("unexpected count %d", n)
	}
}
