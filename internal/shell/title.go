package shell

import "strings"

type titleRule struct {
	match func(location string) bool
	label string
}

func exact(path string) func(string) bool {
	return func(location string) bool { return location == path }
}

func prefix(p string) func(string) bool {
	return func(location string) bool { return strings.HasPrefix(location, p) }
}

// Order matters: the first matching rule names the page.
var titleRules = []titleRule{
	{match: exact("/dashboard"), label: "Dashboard"},
	{match: prefix("/classroom/"), label: "Classroom"},
	{match: exact("/youtube-summarizer"), label: "YouTube Summarizer"},
	{match: exact("/friends"), label: "Friends"},
	{match: exact("/friend-requests"), label: "Friend Requests"},
	{match: exact("/profile"), label: "Profile"},
}

// Title returns the top bar title for location.
func Title(location string) (string, bool) {
	for _, rule := range titleRules {
		if rule.match(location) {
			return rule.label, true
		}
	}
	return "", false
}
