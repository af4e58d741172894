package skin

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CountClass reports how many elements of markup carry class.
func CountClass(markup, class string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return 0, err
	}
	return doc.Find("." + class).Length(), nil
}
