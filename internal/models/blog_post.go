package models

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

func (s BlogStatus) Valid() bool {
	return s == BlogDraft || s == BlogPublished
}

var BlogCategories = []string{
	"Buying Guide",
	"Moving Tips",
	"Maintenance",
	"Reviews",
	"Industry News",
	"How-To",
}

// ValidBlogCategory reports whether c is one of BlogCategories.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if c == v {
			return true
		}
	}
	return false
}

// BlogPost is an article on the public blog.
type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Image       string     `json:"image,omitempty"`
	Status      BlogStatus `json:"status"`
	PublishedAt string     `json:"publishedAt,omitempty"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

// SortDate is publishedAt, falling back to updatedAt for drafts.
func (p *BlogPost) SortDate() string {
	if p.PublishedAt != "" {
		return p.PublishedAt
	}
	return p.UpdatedAt
}
