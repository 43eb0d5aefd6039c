package pageprops

import (
	"html"
	"testing"

	"github.com/iridum-cli/iridum/source"
	. "github.com/smartystreets/goconvey/convey"
)

func page(attr string) []byte {
	return []byte(`<!DOCTYPE html><html><body><div id="app" ` + attr + `></div></body></html>`)
}

func TestExtract(t *testing.T) {
	Convey("Given a page with an escaped JSON attribute", t, func() {
		payload := `{"props":{"titles":[{"name":"Dune & co","id":1}]}}`
		doc := page(`data-page="` + html.EscapeString(payload) + `"`)

		Convey("The payload is decoded", func() {
			props, err := Default.Extract(doc)
			So(err, ShouldBeNil)

			section, err := props.Section()
			So(err, ShouldBeNil)

			titles := section["titles"].([]any)
			So(titles, ShouldHaveLength, 1)
			So(titles[0].(map[string]any)["name"], ShouldEqual, "Dune & co")
		})
	})

	Convey("Given a page without the app element", t, func() {
		_, err := Default.Extract([]byte(`<html><body><div id="main"></div></body></html>`))

		Convey("It is a parse error", func() {
			So(source.IsParse(err), ShouldBeTrue)
		})
	})

	Convey("Given an app element without the attribute", t, func() {
		_, err := Default.Extract(page(`class="x"`))

		Convey("It is a parse error", func() {
			So(source.IsParse(err), ShouldBeTrue)
		})
	})

	Convey("Given an attribute that is not JSON", t, func() {
		_, err := Default.Extract(page(`data-page="{not json"`))

		Convey("It is a parse error", func() {
			So(source.IsParse(err), ShouldBeTrue)
		})
	})

	Convey("Given a payload without props", t, func() {
		props, err := Default.Extract(page(`data-page="{}"`))
		So(err, ShouldBeNil)

		Convey("Section reports a parse error", func() {
			_, err := props.Section()
			So(source.IsParse(err), ShouldBeTrue)
		})
	})

	Convey("Given a custom element and attribute", t, func() {
		extractor := GoqueryExtractor{ElementID: "root", Attribute: "data-state"}
		doc := []byte(`<div id="root" data-state='{"props":{}}'></div>`)

		Convey("They are honored", func() {
			_, err := extractor.Extract(doc)
			So(err, ShouldBeNil)
		})
	})
}
