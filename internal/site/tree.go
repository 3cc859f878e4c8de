package site

import (
	"path"
	"sort"
	"strings"
)

// MenuItem is one link in the primary navigation menu.
type MenuItem struct {
	Title  string
	Href   string
	Active bool
}

// Page is a markdown source file and the page it becomes.
type Page struct {
	Source string // relative markdown path, slash separated
	Title  string
}

// HTMLPath is the page's output path relative to the site root.
func (p Page) HTMLPath() string {
	return mdPathToHTML(p.Source)
}

// IsHome reports whether p is the landing page.
func (p Page) IsHome() bool {
	return p.Source == "index.md"
}

// sortPages orders pages home first, then top-level pages before nested
// ones, then by path.
func sortPages(pages []Page) {
	sort.Slice(pages, func(i, j int) bool {
		a, b := pages[i], pages[j]
		if a.IsHome() != b.IsHome() {
			return a.IsHome()
		}
		da, db := strings.Count(a.Source, "/"), strings.Count(b.Source, "/")
		if da != db {
			return da < db
		}
		return a.Source < b.Source
	})
}

// BuildMenu returns the menu for the page at activePath. Top-level pages
// get an entry each; nested pages are reachable from their section. The
// home page always has a trailing Contact entry pointing at its form.
func BuildMenu(pages []Page, activePath, basePath string) []MenuItem {
	items := []MenuItem{{Title: "Home", Href: basePath + "index.html", Active: activePath == "index.md"}}
	sections := map[string]bool{}

	for _, p := range pages {
		if p.IsHome() {
			continue
		}
		if path.Dir(p.Source) == "." {
			items = append(items, MenuItem{
				Title:  p.Title,
				Href:   basePath + p.HTMLPath(),
				Active: p.Source == activePath,
			})
			continue
		}
		top, _, _ := strings.Cut(p.Source, "/")
		if !sections[top] {
			sections[top] = true
			items = append(items, MenuItem{
				Title:  formatDirName(top),
				Href:   basePath + sectionIndex(pages, top),
				Active: strings.HasPrefix(activePath, top+"/"),
			})
		}
	}

	items = append(items, MenuItem{Title: "Contact", Href: basePath + "index.html#contact"})
	return items
}

// sectionIndex picks the landing page for a top-level directory: its
// index.md if there is one, otherwise its first page in sort order.
func sectionIndex(pages []Page, dir string) string {
	first := ""
	for _, p := range pages {
		if !strings.HasPrefix(p.Source, dir+"/") {
			continue
		}
		if p.Source == dir+"/index.md" {
			return p.HTMLPath()
		}
		if first == "" {
			first = p.HTMLPath()
		}
	}
	return first
}

// mdPathToHTML converts a markdown path to its HTML equivalent.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}

// formatDirName converts a directory name to a human-readable display name.
func formatDirName(name string) string {
	// Title-case each word separated by hyphens or underscores.
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
