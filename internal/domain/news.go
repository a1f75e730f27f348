package domain

// NewsItem est une entrée du fil d'actualités. Text garde les liens sous la forme <a href="...">...</a>.
type NewsItem struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type NewsSegmentKind string

const (
	SegmentText NewsSegmentKind = "text"
	SegmentLink NewsSegmentKind = "link"
)

type NewsSegment struct {
	Kind NewsSegmentKind `json:"kind"`
	Text string          `json:"text"`
	URL  string          `json:"url,omitempty"`
}
