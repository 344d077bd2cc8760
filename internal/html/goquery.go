package html

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// referenceSelector matches every element that may point at a resource
const referenceSelector = "[src], link[href]"

// Element is a tag found by Scan, with its attributes in declaration order
type Element struct {
	Name  string
	Attrs Attributes
}

// Scan parses a whole document and returns the elements carrying
// resource references, in document order. Unlike Tokenizer it builds
// a full HTML5 tree, so it is only suited to reporting.
func Scan(r io.Reader) ([]Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var elements []Element
	doc.Find(referenceSelector).Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		el := Element{Name: goquery.NodeName(s)}
		for _, attr := range node.Attr {
			el.Attrs.Set(attr.Key, attr.Val)
		}
		elements = append(elements, el)
	})

	return elements, nil
}
