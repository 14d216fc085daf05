package shell

// Entry is one navigation item.
type Entry struct {
	Label string
	Path  string
	Icon  string
}

var entries = []Entry{
	{Label: "Dashboard", Path: "/dashboard", Icon: "⌂"},
	{Label: "YouTube Summarizer", Path: "/youtube-summarizer", Icon: "▶"},
	{Label: "Friends", Path: "/friends", Icon: "☺"},
	{Label: "Friend Requests", Path: "/friend-requests", Icon: "✚"},
	{Label: "Profile", Path: "/profile", Icon: "◉"},
}

// Entries returns the navigation entries in display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// IsActive reports whether entry is the current location. Only exact matches count.
func IsActive(entry Entry, location string) bool {
	return entry.Path == location
}
