// Package markdown loads the site's markdown content tree into an in-memory index.
//
// Every top-level directory under the content root is a collection (blog, case-studies, ...).
// Markdown files placed directly under the root belong to the "pages" collection.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const (
	// RootCollection is the collection of markdown files placed directly under the content root.
	RootCollection = "pages"
	// DefaultCategory is used when a post has neither a category nor tags.
	DefaultCategory = "General"

	wordsPerMinute = 200
	excerptLength  = 160
)

var (
	// ErrInvalidDate is returned when the front-matter date matches none of the accepted layouts.
	ErrInvalidDate = errors.New("invalid date")
	// ErrDuplicateSlug is returned when two files in one collection resolve to the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type frontMatter struct {
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug"`
	Date        string     `yaml:"date"`
	Category    string     `yaml:"category"`
	Tags        stringList `yaml:"tags"`
	Author      string     `yaml:"author"`
	Description string     `yaml:"description"`
	Image       string     `yaml:"image"`
	Draft       bool       `yaml:"draft"`
}

// stringList accepts either a YAML sequence or a comma-separated scalar.
type stringList []string

func (l *stringList) UnmarshalYAML(unmarshal func(any) error) error {
	var items []string
	if err := unmarshal(&items); err == nil {
		*l = items
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	*l = strings.Split(s, ",")
	return nil
}

// NewMarkdown returns the goldmark converter used for post bodies.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// Load walks root and builds an Index of every markdown file below it.
func Load(root string, includeDrafts bool) (*Index, error) {
	const op = "adapter.repository.markdown.Load"

	md := NewMarkdown()
	ix := newIndex()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		post, err := parseFile(md, path, collectionOf(rel))
		if err != nil {
			return err
		}

		if post.Draft && !includeDrafts {
			return nil
		}

		return ix.add(post)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ix.sort()

	return ix, nil
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func collectionOf(rel string) string {
	dir := filepath.Dir(filepath.ToSlash(rel))
	if dir == "." || dir == "" {
		return RootCollection
	}

	first, _, _ := strings.Cut(filepath.ToSlash(dir), "/")
	return first
}

func parseFile(md goldmark.Markdown, path, collection string) (*entity.Post, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter of %s: %w", path, err)
	}

	rawSlug := fm.Slug
	if rawSlug == "" {
		rawSlug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	slug, err := NormalizeSlug(rawSlug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	doc := md.Parser().Parse(text.NewReader(body))

	var html bytes.Buffer
	if err := md.Renderer().Render(&html, body, doc); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", path, err)
	}

	plain := plainText(doc, body)
	tags := normalizeTags(fm.Tags)

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = SlugTitle(slug)
	}

	excerpt := strings.TrimSpace(fm.Description)
	if excerpt == "" {
		excerpt = truncate(plain, excerptLength)
	}

	return &entity.Post{
		Slug:        slug,
		Collection:  collection,
		Title:       title,
		Date:        date,
		Category:    deriveCategory(fm.Category, tags),
		Tags:        tags,
		Author:      strings.TrimSpace(fm.Author),
		Description: strings.TrimSpace(fm.Description),
		Image:       strings.TrimSpace(fm.Image),
		Draft:       fm.Draft,
		ReadingTime: readingTime(plain),
		Excerpt:     excerpt,
		HTML:        html.String(),
		SourcePath:  path,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

func normalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))

	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	return tags
}

func deriveCategory(category string, tags []string) string {
	if c := strings.TrimSpace(category); c != "" {
		return c
	}
	if len(tags) > 0 {
		return SlugTitle(tags[0])
	}
	return DefaultCategory
}

// plainText concatenates the text nodes of the document, skipping code blocks and raw HTML.
func plainText(doc ast.Node, src []byte) string {
	var b strings.Builder

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(b.String()), " ")
}

func readingTime(plain string) int {
	words := len(strings.Fields(plain))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	cut := string([]rune(s)[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " ,.;:") + "…"
}

func sortPosts(posts []*entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]

		switch {
		case a.Date.IsZero() != b.Date.IsZero():
			return !a.Date.IsZero()
		case !a.Date.Equal(b.Date):
			return a.Date.After(b.Date)
		default:
			return a.Slug < b.Slug
		}
	})
}
