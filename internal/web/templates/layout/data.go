package layout

// PageData is shared by every page
type PageData struct {
	Title string
	// Refresh reloads the page after this many seconds; 0 disables it
	Refresh int
}
