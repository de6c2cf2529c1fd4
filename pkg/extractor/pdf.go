package extractor

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDFText extracts plain text from PDF bytes. Returns an empty
// string without error for PDFs with no extractable text.
func extractPDFText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", nil
	}
	readerAt := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(readerAt, int64(len(content)))
	if err != nil {
		return "", err
	}
	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
