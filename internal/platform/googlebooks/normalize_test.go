package googlebooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_PrefersISBN13(t *testing.T) {
	v := Volume{
		ID: "vol-1",
		VolumeInfo: VolumeInfo{
			Title:   "Hyperion",
			Authors: []string{"Dan Simmons"},
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "ISBN_10", Identifier: "0553283685"},
				{Type: "ISBN_13", Identifier: "9780553283686"},
			},
		},
	}

	b := Normalize(v)
	assert.Equal(t, "9780553283686", b.ISBN)
}

func TestNormalize_FallsBackToISBN10(t *testing.T) {
	v := Volume{
		VolumeInfo: VolumeInfo{
			IndustryIdentifiers: []IndustryIdentifier{
				{Type: "OTHER", Identifier: "XYZ"},
				{Type: "ISBN_10", Identifier: "0553283685"},
			},
		},
	}

	assert.Equal(t, "0553283685", Normalize(v).ISBN)
}

func TestNormalize_RewritesCoverScheme(t *testing.T) {
	v := Volume{VolumeInfo: VolumeInfo{}}
	v.VolumeInfo.ImageLinks = &struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	}{SmallThumbnail: "http://example.com/cover.png"}

	assert.Equal(t, "https://example.com/cover.png", Normalize(v).CoverURL)
}

func TestNormalize_PrefersLargerThumbnail(t *testing.T) {
	v := Volume{VolumeInfo: VolumeInfo{}}
	v.VolumeInfo.ImageLinks = &struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	}{
		Thumbnail:      "https://example.com/big.png",
		SmallThumbnail: "https://example.com/small.png",
	}

	assert.Equal(t, "https://example.com/big.png", Normalize(v).CoverURL)
}

func TestNormalize_PublishedYear(t *testing.T) {
	tests := []struct {
		date string
		want *int
	}{
		{"1999", intPtr(1999)},
		{"2003-07", intPtr(2003)},
		{"2010-01-15", intPtr(2010)},
		{"", nil},
		{"n.d.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := Normalize(Volume{VolumeInfo: VolumeInfo{PublishedDate: tt.date}}).PublishedYear
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	b := Normalize(Volume{ID: "bare"})

	assert.Equal(t, "bare", b.SourceID)
	assert.Equal(t, "Unknown Title", b.Title)
	assert.Equal(t, "Unknown Author", b.Author)
	assert.Empty(t, b.ISBN)
	assert.Empty(t, b.CoverURL)
	assert.Zero(t, b.PageCount)
	assert.Nil(t, b.PublishedYear)
	assert.NotNil(t, b.Genres)
	assert.Empty(t, b.Genres)
}

func TestNormalize_JoinsAuthors(t *testing.T) {
	v := Volume{VolumeInfo: VolumeInfo{
		Authors:    []string{"Terry Pratchett", "Neil Gaiman"},
		Categories: []string{"Fantasy", "Humor"},
		PageCount:  432,
	}}

	b := Normalize(v)
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", b.Author)
	assert.Equal(t, []string{"Fantasy", "Humor"}, b.Genres)
	assert.Equal(t, 432, b.PageCount)
}

func intPtr(v int) *int { return &v }
