package applicant

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Text extracts plain text from a supported resume file (.pdf or .docx).
// It returns "" on any parse failure instead of an error: an unreadable
// document short-circuits the pipeline to a zero-score record, it does not
// fail the upload. Extension whitelisting happens upstream in the handler.
func Text(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	default:
		return ""
	}
}

func extractTextFromPDF(data []byte) (text string) {
	// ledongthuc/pdf panics on malformed xref objects instead of returning an
	// error, and only GetPlainText recovers internally. A corrupt upload must
	// degrade to "" like every other parse failure, not crash the process.
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	var parts []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, text)
	}
	return normalizeWhitespace(strings.Join(parts, " "))
}

func extractTextFromDocx(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return ""
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return ""
			}
			break
		}
	}
	if len(docXML) == 0 {
		return ""
	}
	xml := string(docXML)
	// Paragraph boundaries become separators before tags are stripped.
	xml = strings.ReplaceAll(xml, "</w:p>", " ")
	xml = strings.ReplaceAll(xml, "<w:tab/>", " ")
	txt := reTags.ReplaceAllString(xml, " ")
	return normalizeWhitespace(txt)
}

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
