// Package site builds the portfolio's static pages from markdown content.
package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/moeezmir/portfolio/internal/progress"
	"github.com/moeezmir/portfolio/web"
)

// defaultHome is rendered when the content directory has no index.md.
const defaultHome = "# About me\n\nWelcome to my portfolio. Add markdown files to the content directory to fill it in.\n"

// Meta is site-wide data shared by every page.
type Meta struct {
	Title     string
	Author    string
	RelayPath string
	Phrases   []string
}

// SiteGenerator converts markdown content into a static HTML site.
type SiteGenerator struct {
	ContentDir string
	OutputDir  string
	Include    []string
	Meta       Meta
	Reporter   progress.Reporter
	// WasmPath is the compiled browser client. It is copied to
	// OutputDir/app.wasm unless it already lives there.
	WasmPath string
	// WasmExecPath overrides where wasm_exec.js is copied from.
	WasmExecPath string
}

// ClientFile is the name the pages load the browser client from.
const ClientFile = "app.wasm"

// Result summarises a build.
type Result struct {
	Pages int
	Bytes int64
	// Warnings are non-fatal problems, e.g. a missing wasm_exec.js.
	Warnings []string
}

// NewSiteGenerator creates a SiteGenerator with the given directories.
func NewSiteGenerator(contentDir, outputDir string, meta Meta) *SiteGenerator {
	return &SiteGenerator{
		ContentDir: contentDir,
		OutputDir:  outputDir,
		Include:    []string{"**/*.md"},
		Meta:       meta,
	}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	SiteTitle   string
	Author      string
	Content     template.HTML
	Menu        []MenuItem
	BasePath    string
	Home        bool
	PhrasesJSON string
	RelayPath   string
	Year        int
}

// Generate builds the full static site.
func (g *SiteGenerator) Generate() (Result, error) {
	var res Result

	sources, err := g.collect()
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return res, err
	}

	n, err := g.writeAssets(&res)
	if err != nil {
		return res, fmt.Errorf("writing assets: %w", err)
	}
	res.Bytes += n

	pages := make([]Page, 0, len(sources)+1)
	for rel, content := range sources {
		pages = append(pages, Page{Source: rel, Title: extractTitle(string(content), rel)})
	}
	sortPages(pages)

	md := newMarkdown()
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return res, fmt.Errorf("parsing page template: %w", err)
	}

	phrases, err := json.Marshal(g.Meta.Phrases)
	if err != nil {
		return res, err
	}

	reporter := g.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	reporter.Start(len(pages))
	defer reporter.Finish()

	for i, p := range pages {
		reporter.Update(i+1, p.Source)
		n, err := g.renderPage(md, tmpl, pages, p, sources[p.Source], string(phrases))
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", p.Source, err)
		}
		res.Bytes += n
		res.Pages++
	}

	return res, nil
}

// collect reads every included markdown file, keyed by slash-separated
// path relative to ContentDir. A missing content directory yields just
// the default home page.
func (g *SiteGenerator) collect() (map[string][]byte, error) {
	sources := map[string][]byte{}

	err := filepath.WalkDir(g.ContentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(g.ContentDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, g.Include) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sources[rel] = content
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("walking content dir: %w", err)
	}

	if _, ok := sources["index.md"]; !ok {
		sources["index.md"] = []byte(defaultHome)
	}
	return sources, nil
}

// matchesAny checks if relPath matches any of the given glob patterns.
// An empty pattern list matches everything.
func matchesAny(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(filepath.ToSlash(pattern), relPath); err == nil && matched {
			return true
		}
	}
	return false
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// renderPage converts a single markdown file to an HTML page and returns
// the number of bytes written.
func (g *SiteGenerator) renderPage(md goldmark.Markdown, tmpl *template.Template, pages []Page, p Page, content []byte, phrasesJSON string) (int64, error) {
	var htmlBuf bytes.Buffer
	if err := md.Convert(content, &htmlBuf); err != nil {
		return 0, fmt.Errorf("converting markdown: %w", err)
	}

	htmlRelPath := p.HTMLPath()
	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(htmlRelPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}

	// Compute base path for asset references.
	basePath := strings.Repeat("../", strings.Count(htmlRelPath, "/"))

	data := pageData{
		Title:       p.Title,
		SiteTitle:   g.Meta.Title,
		Author:      g.Meta.Author,
		Content:     template.HTML(rewriteMDLinks(htmlBuf.String())),
		Menu:        BuildMenu(pages, p.Source, basePath),
		BasePath:    basePath,
		Home:        p.IsHome(),
		PhrasesJSON: phrasesJSON,
		RelayPath:   g.Meta.RelayPath,
		Year:        time.Now().Year(),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		return 0, err
	}
	return int64(out.Len()), nil
}

// writeAssets copies the embedded static files and the Go wasm support
// script into OutputDir/static, then the compiled client into OutputDir.
func (g *SiteGenerator) writeAssets(res *Result) (int64, error) {
	staticDir := filepath.Join(g.OutputDir, "static")
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		return 0, err
	}

	var total int64
	err := fs.WalkDir(web.StaticFS, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := web.StaticFS.ReadFile(path)
		if err != nil {
			return err
		}
		total += int64(len(data))
		return os.WriteFile(filepath.Join(g.OutputDir, filepath.FromSlash(path)), data, 0o644)
	})
	if err != nil {
		return total, err
	}

	src := g.wasmExecSource()
	data, err := os.ReadFile(src)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("wasm_exec.js not copied (%v); the client will not start until it is in %s", err, staticDir))
	} else {
		total += int64(len(data))
		if err := os.WriteFile(filepath.Join(staticDir, "wasm_exec.js"), data, 0o644); err != nil {
			return total, err
		}
	}

	n, err := g.writeClient(res)
	return total + n, err
}

// writeClient copies the compiled client into the output directory and
// warns when the output still has none.
func (g *SiteGenerator) writeClient(res *Result) (int64, error) {
	dest := filepath.Join(g.OutputDir, ClientFile)
	var written int64

	if g.WasmPath != "" && !samePath(g.WasmPath, dest) {
		data, err := os.ReadFile(g.WasmPath)
		switch {
		case err == nil:
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return 0, err
			}
			written = int64(len(data))
		case !errors.Is(err, fs.ErrNotExist):
			return 0, fmt.Errorf("reading client %s: %w", g.WasmPath, err)
		}
	}

	if _, err := os.Stat(dest); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s not found in %s; the interactive client will not start until it is built: GOOS=js GOARCH=wasm go build -o %s ./cmd/portfolio-wasm",
			ClientFile, g.OutputDir, dest))
	}
	return written, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// wasmExecSource locates wasm_exec.js in the Go installation. Go 1.24
// moved it from misc/wasm to lib/wasm.
func (g *SiteGenerator) wasmExecSource() string {
	if g.WasmExecPath != "" {
		return g.WasmExecPath
	}
	root := os.Getenv("GOROOT")
	if root == "" {
		root = runtime.GOROOT()
	}
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		p := filepath.Join(root, dir, "wasm_exec.js")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(root, "lib/wasm", "wasm_exec.js")
}

// extractTitle pulls the first # heading from markdown content, or falls back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return formatDirName(strings.TrimSuffix(filepath.Base(relPath), ".md"))
}

// rewriteMDLinks changes relative .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	var b strings.Builder
	for {
		idx := strings.Index(content, `href="`)
		if idx == -1 {
			b.WriteString(content)
			return b.String()
		}
		start := idx + len(`href="`)
		end := strings.IndexByte(content[start:], '"')
		if end == -1 {
			b.WriteString(content)
			return b.String()
		}
		end += start

		href := content[start:end]
		b.WriteString(content[:start])
		if !strings.Contains(href, "://") {
			target, frag, _ := strings.Cut(href, "#")
			if strings.HasSuffix(target, ".md") {
				href = mdPathToHTML(target)
				if frag != "" {
					href += "#" + frag
				}
			}
		}
		b.WriteString(href)
		content = content[end:]
	}
}
