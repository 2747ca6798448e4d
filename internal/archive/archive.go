package archive

import (
	"os"
	"regexp"
	"sort"
)

// Entry is one previously generated briefing page.
type Entry struct {
	Date     string
	FileName string
}

var pagePattern = regexp.MustCompile(`^briefing-(\d{4}-\d{2}-\d{2})\.html$`)

// List scans the site directory for dated briefing pages and returns them
// newest first. A missing directory yields an empty list.
func List(siteDir string) []Entry {
	dirEntries, err := os.ReadDir(siteDir)
	if err != nil {
		return nil
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		match := pagePattern.FindStringSubmatch(de.Name())
		if match == nil {
			continue
		}
		entries = append(entries, Entry{Date: match[1], FileName: de.Name()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return entries
}
