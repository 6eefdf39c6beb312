// Package textextract turns binary document blobs into plain UTF-8 text.
//
// Dispatch is by MIME type with a filename-extension fallback. PDFs go
// through a native PDF text reader, modern and legacy Word documents
// through docconv, and plain text passes straight through. Legacy .doc
// files that docconv cannot handle fall back to a printable-run binary
// scan that recovers readable sentences from the OLE container.
package textextract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
)

const (
	// minPrintableRun is the shortest ASCII run the binary .doc fallback
	// keeps. Shorter runs are almost always field codes and OLE noise.
	minPrintableRun = 20

	// scannedPDFThreshold flags PDFs that yielded suspiciously little
	// text per page, which usually means scanned images without OCR.
	scannedPDFThreshold = 40
)

// Result is the extracted text plus what the extractor learned on the way.
type Result struct {
	Text      string
	PageCount int
	// LikelyScanned is set for PDFs whose per-page text yield is so low
	// the document is probably image-only.
	LikelyScanned bool
}

type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Extract converts a document blob to plain text. The MIME type drives
// dispatch; when it is empty or generic the filename extension decides.
func (e *Extractor) Extract(data []byte, mimeType, filename string) (*Result, error) {
	if len(data) == 0 {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}

	switch resolveFormat(mimeType, filename) {
	case formatPDF:
		return e.extractPDF(data, filename)
	case formatDocx:
		return e.extractDocx(data, filename)
	case formatDoc:
		return e.extractDoc(data, filename)
	case formatText:
		return e.extractPlain(data, filename)
	default:
		return nil, pipeerrors.NewUnsupportedFormatError(mimeType, filename)
	}
}

type format int

const (
	formatUnknown format = iota
	formatPDF
	formatDocx
	formatDoc
	formatText
)

func resolveFormat(mimeType, filename string) format {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "application/pdf":
		return formatPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return formatDocx
	case "application/msword":
		return formatDoc
	case "text/plain":
		return formatText
	case "application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return formatUnknown
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return formatPDF
	case ".docx":
		return formatDocx
	case ".doc":
		return formatDoc
	case ".txt":
		return formatText
	}
	return formatUnknown
}

func (e *Extractor) extractPDF(data []byte, filename string) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}

	totalPages := reader.NumPage()
	var sb strings.Builder
	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		p := reader.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract PDF page, skipping", map[string]interface{}{
				"filename": filename,
				"page":     pageIndex,
			})
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	text := cleanText(sb.String())
	if text == "" {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}

	likelyScanned := totalPages > 0 && len(text)/totalPages < scannedPDFThreshold
	if likelyScanned {
		e.logger.Warn("PDF yielded very little text, likely a scanned document", map[string]interface{}{
			"filename":   filename,
			"page_count": totalPages,
			"text_len":   len(text),
		})
	}

	return &Result{Text: text, PageCount: totalPages, LikelyScanned: likelyScanned}, nil
}

func (e *Extractor) extractDocx(data []byte, filename string) (*Result, error) {
	body, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}
	text := cleanText(body)
	if text == "" {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}
	return &Result{Text: text}, nil
}

func (e *Extractor) extractDoc(data []byte, filename string) (*Result, error) {
	// Plenty of uploads carry a .doc extension but are really OOXML, so the
	// DOCX parser gets the first attempt.
	if body, _, err := docconv.ConvertDocx(bytes.NewReader(data)); err == nil {
		if text := cleanText(body); text != "" {
			return &Result{Text: text}, nil
		}
	}

	body, _, err := docconv.ConvertDoc(bytes.NewReader(data))
	if err == nil {
		if text := cleanText(body); text != "" {
			return &Result{Text: text}, nil
		}
	}

	e.logger.Warn("Legacy .doc conversion failed, falling back to binary scan", map[string]interface{}{
		"filename": filename,
	})
	text := scanPrintableRuns(data)
	if text == "" {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}
	return &Result{Text: text}, nil
}

func (e *Extractor) extractPlain(data []byte, filename string) (*Result, error) {
	if !utf8.Valid(data) {
		// Best effort: drop invalid bytes rather than failing the item.
		data = bytes.ToValidUTF8(data, nil)
	}
	text := cleanText(string(data))
	if text == "" {
		return nil, pipeerrors.NewNoExtractableTextError(filename)
	}
	return &Result{Text: text}, nil
}

// scanPrintableRuns recovers text from a legacy .doc binary by keeping
// printable-ASCII runs that look like prose: at least minPrintableRun
// characters, more than three words, and mostly letters.
func scanPrintableRuns(data []byte) string {
	var runs []string
	var current bytes.Buffer

	flush := func() {
		if current.Len() >= minPrintableRun {
			run := strings.TrimSpace(current.String())
			if looksLikeProse(run) {
				runs = append(runs, run)
			}
		}
		current.Reset()
	}

	for _, b := range data {
		if b >= 0x20 && b < 0x7f {
			current.WriteByte(b)
		} else {
			flush()
		}
	}
	flush()

	// Runs come from disjoint regions of the binary, so they are joined as
	// separate paragraphs rather than adjacent lines.
	return cleanText(strings.Join(runs, "\n\n"))
}

func looksLikeProse(run string) bool {
	if len(run) < minPrintableRun {
		return false
	}
	if len(strings.Fields(run)) <= 3 {
		return false
	}
	letters := 0
	for _, r := range run {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return float64(letters)/float64(len(run)) > 0.5
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// cleanText normalizes extractor output: collapsed spaces, at most one
// blank line in a row, trimmed lines, no leading or trailing whitespace.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// FormatLabel names a format for logs and error details.
func FormatLabel(mimeType, filename string) string {
	switch resolveFormat(mimeType, filename) {
	case formatPDF:
		return "pdf"
	case formatDocx:
		return "docx"
	case formatDoc:
		return "doc"
	case formatText:
		return "text"
	default:
		return fmt.Sprintf("unsupported (%s)", mimeType)
	}
}
