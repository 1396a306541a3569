package utils

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// CheckPDF makes sure b is a readable PDF with at least one page.
func CheckPDF(b []byte) (pages int, err error) {
	defer func() {
		// the parser panics on some malformed inputs
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("unreadable pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return 0, fmt.Errorf("unreadable pdf: %w", err)
	}
	pages = r.NumPage()
	if pages == 0 {
		return 0, errors.New("pdf has no pages")
	}
	return pages, nil
}
