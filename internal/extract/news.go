package extract

// NewsItem is one card on the news page.
type NewsItem struct {
	Title string
	Image string
	Link  string
}

// NewsItems extracts news posts with the same block technique used for
// products. Posts without a title anchor still produce a card.
func NewsItems(doc, blockClass string) []NewsItem {
	var items []NewsItem
	for _, block := range Blocks(doc, blockClass) {
		item, _ := ParseBlock(block)
		n := NewsItem{Title: item.Title, Image: item.Image, Link: item.Link}
		if n.Title == "" {
			n.Title = "No Title"
		}
		if n.Link == "" {
			n.Link = "#"
		}
		items = append(items, n)
	}
	return items
}
