package googlebooks

import (
	"strconv"
	"strings"
)

const (
	fallbackTitle  = "Unknown Title"
	fallbackAuthor = "Unknown Author"
)

// Book is the normalized shape of a catalog volume, ready to be turned
// into a library record once the caller supplies owner and category.
type Book struct {
	SourceID      string   `json:"source_id"`
	ISBN          string   `json:"isbn,omitempty"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description,omitempty"`
	CoverURL      string   `json:"cover_url,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
	PublishedYear *int     `json:"published_year,omitempty"`
	Genres        []string `json:"genres"`
}

// Normalize maps a raw volume into the internal book shape. The mapping is
// total: missing optional fields produce zero values or fallbacks, never
// an error.
func Normalize(v Volume) Book {
	info := v.VolumeInfo

	title := info.Title
	if title == "" {
		title = fallbackTitle
	}

	author := strings.Join(info.Authors, ", ")
	if author == "" {
		author = fallbackAuthor
	}

	genres := info.Categories
	if genres == nil {
		genres = []string{}
	}

	return Book{
		SourceID:      v.ID,
		ISBN:          pickISBN(info.IndustryIdentifiers),
		Title:         title,
		Author:        author,
		Description:   info.Description,
		CoverURL:      pickCoverURL(info),
		PageCount:     info.PageCount,
		PublishedYear: parseYear(info.PublishedDate),
		Genres:        genres,
	}
}

// pickISBN prefers ISBN-13 over ISBN-10.
func pickISBN(ids []IndustryIdentifier) string {
	var isbn10 string
	for _, id := range ids {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		}
	}
	return isbn10
}

// pickCoverURL prefers the larger thumbnail and rewrites the insecure
// scheme the API serves by default.
func pickCoverURL(info VolumeInfo) string {
	if info.ImageLinks == nil {
		return ""
	}
	link := info.ImageLinks.Thumbnail
	if link == "" {
		link = info.ImageLinks.SmallThumbnail
	}
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") {
		link = "https://" + strings.TrimPrefix(link, "http://")
	}
	return link
}

// parseYear extracts the leading 4-digit year from a date of arbitrary
// precision ("1999", "2003-07", "2010-01-15").
func parseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}
