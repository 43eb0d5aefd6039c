// Package pageprops decodes the JSON payload the website embeds in an HTML attribute.
package pageprops

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/iridum-cli/iridum/source"
)

// Extractor turns a page into its embedded props.
type Extractor interface {
	Extract(html []byte) (Props, error)
}

// GoqueryExtractor reads Attribute of the element with id ElementID.
type GoqueryExtractor struct {
	ElementID string
	Attribute string
}

// Default matches <div id="app" data-page="...">.
var Default Extractor = GoqueryExtractor{ElementID: "app", Attribute: "data-page"}

// Extract parses the document, reads the attribute and decodes it as JSON.
func (g GoqueryExtractor) Extract(html []byte) (Props, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &source.ParseError{Stage: "html", Cause: err}
	}

	selection := doc.Find("#" + g.ElementID).First()
	if selection.Length() == 0 {
		return nil, &source.ParseError{Stage: "html", Cause: fmt.Errorf("no element with id %q", g.ElementID)}
	}

	// goquery has already unescaped the attribute entities
	raw, ok := selection.Attr(g.Attribute)
	if !ok {
		return nil, &source.ParseError{Stage: "html", Cause: fmt.Errorf("#%s has no %s attribute", g.ElementID, g.Attribute)}
	}

	var props Props
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, &source.ParseError{Stage: g.Attribute, Cause: err}
	}
	if props == nil {
		return nil, &source.ParseError{Stage: g.Attribute, Cause: fmt.Errorf("payload is not an object")}
	}

	return props, nil
}
