// Package export renders documents into downloadable files. It never touches
// storage; callers hand in the title and content they already loaded.
package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type File struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// Error is returned for every failed export
type Error struct {
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeNameRun = regexp.MustCompile(`["\\/\x00-\x1f\x7f]+`)
	lineBreakTag  = regexp.MustCompile(`(?i)<br\s*/?>|</p\s*>|</div\s*>|</li\s*>|</h[1-6]\s*>`)
)

type Exporter struct {
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

// Export renders one document as pdf or docx
func (e *Exporter) Export(title, content string, format Format) (*File, error) {
	text := e.PlainText(content)

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatPDF:
		data, err = renderPDF(title, text)
		contentType = contentTypePDF
	case FormatDOCX:
		data, err = renderDOCX(title, text)
		contentType = contentTypeDOCX
	default:
		return nil, &Error{Format: format, Err: fmt.Errorf("unsupported format %q", format)}
	}
	if err != nil {
		return nil, &Error{Format: format, Err: err}
	}

	return &File{
		Name:        FileName(title, e.now(), format),
		ContentType: contentType,
		Bytes:       data,
	}, nil
}

// PlainText strips markup from generated content, keeping block breaks as newlines
func (e *Exporter) PlainText(content string) string {
	withBreaks := lineBreakTag.ReplaceAllString(content, "\n")
	stripped := html.UnescapeString(e.policy.Sanitize(withBreaks))
	return strings.ReplaceAll(stripped, "\r\n", "\n")
}

// FileName is the title with whitespace runs replaced by underscores,
// suffixed with the UTC date: "Mutual NDA" -> "Mutual_NDA_2024-05-01.pdf".
// Quotes, slashes and control characters are dropped.
func FileName(title string, at time.Time, format Format) string {
	base := whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
	base = unsafeNameRun.ReplaceAllString(base, "")
	if base == "" {
		base = "document"
	}
	return fmt.Sprintf("%s_%s.%s", base, at.UTC().Format("2006-01-02"), format)
}
