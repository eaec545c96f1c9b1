package extract

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format tags the declared/inferred shape of an uploaded document.
type Format string

const (
	FormatText     Format = "text"
	FormatTabular  Format = "tabular"
	FormatRichText Format = "richtext"
	FormatBinary   Format = "binary"
	FormatUnknown  Format = "unknown"
)

// Document is a raw uploaded payload. It is request-scoped and is not
// retained after extraction.
type Document struct {
	Data        []byte
	FileName    string
	ContentType string
}

// Result is the plain text recovered from a Document. LowConfidence marks
// output produced by the best-effort binary scan rather than a real parser.
type Result struct {
	Text          string
	LowConfidence bool
}

// FormatParseError reports that a structured format failed to parse.
// The caller can offer manual skill entry as a fallback.
type FormatParseError struct {
	Format Format
	Err    error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("could not parse %s document: %v; try a different format or enter skills manually", e.Format, e.Err)
}

func (e *FormatParseError) Unwrap() error { return e.Err }

const placeholderNoText = "No readable text could be recovered from this file. Try uploading it in a different format."

// printableRuns matches contiguous runs of letters and whitespace long
// enough to be worth keeping from an otherwise opaque binary payload.
var printableRuns = regexp.MustCompile(`[A-Za-z][A-Za-z \t]{9,}`)

// DetectFormat derives the Format tag from declared content type and
// filename extension. Content sniffing stays with the caller.
func DetectFormat(contentType, fileName string) Format {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch clean {
	case "text/plain":
		return FormatText
	case "text/csv", "application/csv":
		return FormatTabular
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/msword":
		return FormatRichText
	case "application/pdf":
		return FormatBinary
	}

	// Generic or missing content types (curl sends multipart parts as
	// application/octet-stream) fall through to the extension.
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md":
		return FormatText
	case ".csv", ".tsv":
		return FormatTabular
	case ".docx", ".doc":
		return FormatRichText
	case ".pdf":
		return FormatBinary
	}
	return FormatUnknown
}

// Extract converts a Document into plain text according to its format tag.
// Structured formats (tabular, rich-text) fail with *FormatParseError when
// they cannot be parsed at all; every other format degrades to a heuristic
// recovery and never returns an error.
func Extract(doc Document) (Result, error) {
	switch DetectFormat(doc.ContentType, doc.FileName) {
	case FormatText:
		return Result{Text: decodeText(doc.Data)}, nil
	case FormatTabular:
		text, err := extractCSV(doc.Data)
		if err != nil {
			return Result{}, &FormatParseError{Format: FormatTabular, Err: err}
		}
		return Result{Text: text}, nil
	case FormatRichText:
		text, err := extractDOCX(doc.Data)
		if err != nil {
			return Result{}, &FormatParseError{Format: FormatRichText, Err: err}
		}
		return Result{Text: text}, nil
	default:
		return extractBinary(doc.Data), nil
	}
}

func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// extractCSV flattens a tabular document: empty cells and empty rows are
// dropped, remaining cells in a row joined with spaces, rows with newlines.
// Per-row parse errors are skipped; the error return fires only when the
// whole document yields nothing.
func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []string
	var rowErrs int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs++
				continue
			}
			return "", err
		}
		var cells []string
		for _, cell := range record {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				cells = append(cells, trimmed)
			}
		}
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	}

	if len(lines) == 0 {
		if rowErrs > 0 {
			return "", fmt.Errorf("%d unparseable rows, no usable data", rowErrs)
		}
		return "", errors.New("no rows with data")
	}
	return strings.Join(lines, "\n"), nil
}

// extractDOCX pulls visible text out of the word-processor zip package,
// discarding markup and styling.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return stripWordXML(raw), nil
}

func stripWordXML(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// extractBinary is the best-effort path for PDF, legacy and unknown
// payloads. A real PDF text pass runs first; when that fails, printable
// runs embedded in the raw bytes are recovered and the result is marked
// low-confidence. It never fails outright.
func extractBinary(data []byte) Result {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		if text, err := extractPDF(data); err == nil && strings.TrimSpace(text) != "" {
			return Result{Text: text}
		}
	}

	runs := printableRuns.FindAllString(string(data), -1)
	if len(runs) == 0 {
		return Result{Text: placeholderNoText, LowConfidence: true}
	}
	return Result{Text: strings.Join(runs, " "), LowConfidence: true}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
