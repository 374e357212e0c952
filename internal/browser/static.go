package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"olx-listings-parser/internal/scraper"
)

// StaticPage serves queries from already-rendered HTML.
type StaticPage struct {
	doc  *goquery.Document
	html string
}

func NewStaticPage(html string) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &StaticPage{doc: doc, html: html}, nil
}

func staticSession(html string) (Session, error) {
	page, err := NewStaticPage(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return page, nil
}

func (p *StaticPage) QueryAll(selector string) ([]scraper.Element, error) {
	return queryAll(p.doc.Selection, selector)
}

// Content returns the markup the page was built from.
func (p *StaticPage) Content() (string, error) {
	return p.html, nil
}

func (p *StaticPage) Close() error {
	return nil
}

type staticElement struct {
	sel *goquery.Selection
}

func (e staticElement) Text() (string, error) {
	return e.sel.Text(), nil
}

func (e staticElement) QueryAll(selector string) ([]scraper.Element, error) {
	return queryAll(e.sel, selector)
}

// queryAll compiles the selector first so bad syntax surfaces as an error
// instead of an empty match.
func queryAll(root *goquery.Selection, selector string) ([]scraper.Element, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}

	found := root.FindMatcher(matcher)
	elements := make([]scraper.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, staticElement{sel: s})
	})
	return elements, nil
}
