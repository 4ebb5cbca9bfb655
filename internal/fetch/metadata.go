package fetch

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Metadata is the link-preview information advertised by a page
type Metadata struct {
	Title       string
	Description string
	Image       string
	SiteName    string
}

// IsZero reports whether the page advertised nothing usable.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Description == "" && m.Image == ""
}

// ExtractMetadata reads Open Graph tags, falling back to Twitter card tags,
// the meta description and the document title. Relative image URLs are
// resolved against pageURL.
func ExtractMetadata(html, pageURL string) (Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := Metadata{
		Title:       firstMeta(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`),
		Description: firstMeta(doc, `meta[property="og:description"]`, `meta[name="twitter:description"]`, `meta[name="description"]`),
		Image:       firstMeta(doc, `meta[property="og:image"]`, `meta[property="og:image:url"]`, `meta[name="twitter:image"]`),
		SiteName:    firstMeta(doc, `meta[property="og:site_name"]`),
	}
	if meta.Title == "" {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if meta.Image != "" {
		meta.Image = resolveURL(pageURL, meta.Image)
	}
	return meta, nil
}

func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

func resolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
