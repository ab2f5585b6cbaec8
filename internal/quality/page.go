package quality

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageCheck is the result of inspecting a published page.
type PageCheck struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"status_code"`
	HasLDJSON  bool   `json:"has_ld_json"`
	HasFAQ     bool   `json:"has_faq"`
	HasImage   bool   `json:"has_img"`
	Detail     string `json:"detail,omitempty"`
}

// InspectPage parses a live article page and checks that structured data,
// the FAQ block and at least one image made it through the theme.
func InspectPage(r io.Reader) (PageCheck, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return PageCheck{}, fmt.Errorf("failed to parse page: %w", err)
	}

	pc := PageCheck{
		HasLDJSON: doc.Find(`script[type="application/ld+json"]`).Length() > 0,
		HasFAQ:    strings.Contains(doc.Text(), FAQMarker),
		HasImage:  doc.Find("img").Length() > 0,
	}
	pc.OK = pc.HasLDJSON && pc.HasFAQ && pc.HasImage
	return pc, nil
}
