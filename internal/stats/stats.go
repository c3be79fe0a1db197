package stats

// Summary aggregates a single owner's library for the dashboard.
type Summary struct {
	Counts           CategoryCounts `json:"counts"`
	FinishedThisYear int            `json:"finished_this_year"`
	FinishedByYear   []YearCount    `json:"finished_by_year"`
	PagesRead        int            `json:"pages_read"`
	AverageRating    float64        `json:"average_rating"`
	TopGenres        []GenreCount   `json:"top_genres"`
}

type CategoryCounts struct {
	Wishlist int `json:"wishlist"`
	Reading  int `json:"reading"`
	Finished int `json:"finished"`
	Owned    int `json:"owned"`
	Total    int `json:"total"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}
