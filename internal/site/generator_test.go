package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moeezmir/portfolio/internal/logging"
)

func testPages() []Page {
	pages := []Page{
		{Source: "projects/go-tools.md", Title: "Go Tools"},
		{Source: "about.md", Title: "About"},
		{Source: "index.md", Title: "Home"},
		{Source: "projects/index.md", Title: "Projects"},
		{Source: "blog/2024/first-post.md", Title: "First Post"},
	}
	sortPages(pages)
	return pages
}

func TestSortPages(t *testing.T) {
	pages := testPages()
	want := []string{
		"index.md",
		"about.md",
		"projects/go-tools.md",
		"projects/index.md",
		"blog/2024/first-post.md",
	}
	for i, p := range pages {
		if p.Source != want[i] {
			t.Errorf("pages[%d] = %q, want %q", i, p.Source, want[i])
		}
	}
}

func TestBuildMenu(t *testing.T) {
	menu := BuildMenu(testPages(), "projects/go-tools.md", "../")

	want := []MenuItem{
		{Title: "Home", Href: "../index.html"},
		{Title: "About", Href: "../about.html"},
		{Title: "Projects", Href: "../projects/index.html", Active: true},
		{Title: "Blog", Href: "../blog/2024/first-post.html"},
		{Title: "Contact", Href: "../index.html#contact"},
	}
	if len(menu) != len(want) {
		t.Fatalf("menu has %d items, want %d: %+v", len(menu), len(want), menu)
	}
	for i, item := range menu {
		if item != want[i] {
			t.Errorf("menu[%d] = %+v, want %+v", i, item, want[i])
		}
	}
}

func TestBuildMenuHomeActive(t *testing.T) {
	menu := BuildMenu(testPages(), "index.md", "")
	if !menu[0].Active {
		t.Error("Home should be active on index.md")
	}
	for _, item := range menu[1:] {
		if item.Active {
			t.Errorf("%q should not be active on the home page", item.Title)
		}
	}
	if last := menu[len(menu)-1]; last.Href != "index.html#contact" {
		t.Errorf("contact href = %q", last.Href)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		content string
		path    string
		want    string
	}{
		{"# Hello World\n\nBody", "x.md", "Hello World"},
		{"intro\n  # Indented\n", "x.md", "Indented"},
		{"## Only a subheading\n", "open-source.md", "Open Source"},
		{"", "side_projects.md", "Side Projects"},
	}
	for _, tt := range tests {
		if got := extractTitle(tt.content, tt.path); got != tt.want {
			t.Errorf("extractTitle(%q, %q) = %q, want %q", tt.content, tt.path, got, tt.want)
		}
	}
}

func TestMdPathToHTML(t *testing.T) {
	tests := map[string]string{
		"index.md":         "index.html",
		"projects/cli.md":  "projects/cli.html",
		"static/style.css": "static/style.css",
		"notes.md.backup":  "notes.md.backup",
	}
	for in, want := range tests {
		if got := mdPathToHTML(in); got != want {
			t.Errorf("mdPathToHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewriteMDLinks(t *testing.T) {
	in := `<a href="about.md">a</a> <a href="projects/cli.md#usage">b</a> <a href="https://example.com/readme.md">c</a> <a href="#top">d</a>`
	want := `<a href="about.html">a</a> <a href="projects/cli.html#usage">b</a> <a href="https://example.com/readme.md">c</a> <a href="#top">d</a>`
	if got := rewriteMDLinks(in); got != want {
		t.Errorf("rewriteMDLinks:\n got %s\nwant %s", got, want)
	}
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{"*.md", "projects/**/*.md"}
	tests := map[string]bool{
		"index.md":            true,
		"projects/a/b/cli.md": true,
		"drafts/wip.md":       false,
	}
	for path, want := range tests {
		if got := matchesAny(path, patterns); got != want {
			t.Errorf("matchesAny(%q) = %v, want %v", path, got, want)
		}
	}
	if !matchesAny("anything.md", nil) {
		t.Error("empty pattern list should match everything")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestGenerate(t *testing.T) {
	content := t.TempDir()
	out := t.TempDir()
	wasmExec := filepath.Join(t.TempDir(), "wasm_exec.js")
	client := filepath.Join(t.TempDir(), "client.wasm")

	writeFile(t, filepath.Join(content, "index.md"), "# Welcome\n\nSee [about](about.md).\n")
	writeFile(t, filepath.Join(content, "about.md"), "# About\n\n```go\nfmt.Println(\"hi\")\n```\n")
	writeFile(t, filepath.Join(content, "projects", "cli.md"), "# CLI\n")
	writeFile(t, filepath.Join(content, "drafts", "wip.md"), "# WIP\n")
	writeFile(t, wasmExec, "// go wasm support\n")
	writeFile(t, client, "\x00asm")

	g := NewSiteGenerator(content, out, Meta{
		Title:     "Portfolio",
		Author:    "Moeez",
		RelayPath: "/contact",
		Phrases:   []string{"Gopher", "Writer"},
	})
	g.Include = []string{"*.md", "projects/**/*.md"}
	g.WasmExecPath = wasmExec
	g.WasmPath = client

	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Pages != 3 {
		t.Errorf("pages = %d, want 3", res.Pages)
	}
	if res.Bytes == 0 {
		t.Error("expected a non-zero byte count")
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	index := readFile(t, filepath.Join(out, "index.html"))
	for _, want := range []string{
		`id="theme-toggle"`,
		`class="nav-toggle"`,
		`id="primary-menu"`,
		`class="typing"`,
		"Gopher",
		`id="contact-form"`,
		`action="/contact"`,
		`id="submit-btn"`,
		`class="btn-text"`,
		`id="form-status"`,
		`href="about.html"`,
		"<title>Portfolio</title>",
		`src="static/wasm_exec.js"`,
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index.html missing %s", want)
		}
	}

	about := readFile(t, filepath.Join(out, "about.html"))
	if strings.Contains(about, `id="contact-form"`) {
		t.Error("contact form should only be on the home page")
	}
	if !strings.Contains(about, "<title>About | Portfolio</title>") {
		t.Error("about.html has the wrong title")
	}
	if !strings.Contains(about, "chroma") && !strings.Contains(about, "<pre") {
		t.Error("expected highlighted code block")
	}

	cli := readFile(t, filepath.Join(out, "projects", "cli.html"))
	if !strings.Contains(cli, `href="../static/style.css"`) {
		t.Error("nested page should reference assets relative to the site root")
	}
	if !strings.Contains(cli, `href="../index.html#contact"`) {
		t.Error("nested page menu should link to the contact form")
	}

	if _, err := os.Stat(filepath.Join(out, "drafts", "wip.html")); !os.IsNotExist(err) {
		t.Error("excluded page should not be rendered")
	}
	for _, asset := range []string{"style.css", "loader.js", "wasm_exec.js"} {
		if _, err := os.Stat(filepath.Join(out, "static", asset)); err != nil {
			t.Errorf("missing static/%s: %v", asset, err)
		}
	}
	if got := readFile(t, filepath.Join(out, ClientFile)); got != "\x00asm" {
		t.Errorf("app.wasm = %q, want the compiled client", got)
	}
}

func TestGenerateClientAlreadyInOutput(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, ClientFile), "\x00asm")

	g := NewSiteGenerator(t.TempDir(), out, Meta{Title: "Portfolio"})
	g.WasmExecPath = filepath.Join(t.TempDir(), "nope.js")
	g.WasmPath = filepath.Join(out, ClientFile)

	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, w := range res.Warnings {
		if strings.Contains(w, ClientFile) {
			t.Errorf("unexpected client warning: %s", w)
		}
	}
	if got := readFile(t, filepath.Join(out, ClientFile)); got != "\x00asm" {
		t.Errorf("app.wasm = %q", got)
	}
}

func TestGenerateWithoutContent(t *testing.T) {
	out := t.TempDir()
	g := NewSiteGenerator(filepath.Join(t.TempDir(), "missing"), out, Meta{Title: "Portfolio", RelayPath: "/contact"})
	g.WasmExecPath = filepath.Join(t.TempDir(), "nope.js")

	res, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Pages != 1 {
		t.Errorf("pages = %d, want 1", res.Pages)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected wasm_exec.js and app.wasm warnings, got %v", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "wasm_exec.js") {
		t.Errorf("expected a wasm_exec.js warning, got %q", res.Warnings[0])
	}
	if !strings.Contains(res.Warnings[1], "app.wasm not found") || !strings.Contains(res.Warnings[1], "./cmd/portfolio-wasm") {
		t.Errorf("expected an app.wasm warning with build instructions, got %q", res.Warnings[1])
	}
	index := readFile(t, filepath.Join(out, "index.html"))
	if !strings.Contains(index, "About me") {
		t.Error("expected default home content")
	}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	var rebuilds atomic.Int32
	done := make(chan struct{}, 1)

	w := NewWatcher(dir, func() error {
		rebuilds.Add(1)
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}, logging.Nop())
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// The watch is registered asynchronously, so keep touching the file.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-done:
			if rebuilds.Load() == 0 {
				t.Fatal("rebuild count not recorded")
			}
			return
		case <-tick.C:
			writeFile(t, filepath.Join(dir, "index.md"), strings.Repeat("#", i%3+1)+" Title\n")
		case <-deadline:
			t.Fatal("watcher did not rebuild within 5s")
		}
	}
}
