package scraper

// Pair zips titles and prices by position. The result has exactly
// min(len(titles), len(prices)) listings; the tail of the longer column is
// dropped.
func Pair(titles, prices Field) []Listing {
	n := min(len(titles), len(prices))
	listings := make([]Listing, n)
	for i := 0; i < n; i++ {
		listings[i] = Listing{Title: titles[i], Price: prices[i]}
	}
	return listings
}
