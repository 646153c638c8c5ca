package app

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// pdfPageCount reads the page count out of a PDF in memory. Returns 0 when
// the document cannot be parsed; the upload still succeeds.
func pdfPageCount(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}
