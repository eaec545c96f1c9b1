package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	doc := Document{
		Data:        []byte("Jane Doe\nSoftware Engineer"),
		FileName:    "resume.txt",
		ContentType: "text/plain",
	}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("extract text: %v", err)
	}
	if res.Text != "Jane Doe\nSoftware Engineer" {
		t.Fatalf("unexpected text: %q", res.Text)
	}
	if res.LowConfidence {
		t.Fatal("plain text must not be low confidence")
	}
}

func TestExtractCSVJoinsCells(t *testing.T) {
	doc := Document{
		Data:        []byte("Name,Skills\nJane,Python;React"),
		FileName:    "resume.csv",
		ContentType: "text/csv",
	}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("extract csv: %v", err)
	}
	lines := strings.Split(res.Text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), res.Text)
	}
	if lines[1] != "Jane Python;React" {
		t.Fatalf("expected cells joined by space, got %q", lines[1])
	}
}

func TestExtractCSVDropsEmptyCellsAndRows(t *testing.T) {
	doc := Document{
		Data:        []byte("a,,b\n\n,,\nc,d,"),
		FileName:    "data.csv",
		ContentType: "text/csv",
	}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("extract csv: %v", err)
	}
	if res.Text != "a b\nc d" {
		t.Fatalf("unexpected flattened csv: %q", res.Text)
	}
}

func TestExtractCSVAllEmptyFails(t *testing.T) {
	doc := Document{
		Data:        []byte("\n\n,,\n"),
		FileName:    "empty.csv",
		ContentType: "text/csv",
	}
	_, err := Extract(doc)
	var parseErr *FormatParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected FormatParseError, got %v", err)
	}
	if parseErr.Format != FormatTabular {
		t.Fatalf("expected tabular format in error, got %s", parseErr.Format)
	}
}

func TestExtractDOCX(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p></w:body></w:document>`)
	doc := Document{Data: data, FileName: "resume.docx", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if res.Text != "Hello\nWorld" {
		t.Fatalf("unexpected docx text: %q", res.Text)
	}
}

func TestExtractDOCXCorruptFails(t *testing.T) {
	doc := Document{Data: []byte("not a zip at all"), FileName: "resume.docx", ContentType: "application/msword"}
	_, err := Extract(doc)
	var parseErr *FormatParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected FormatParseError, got %v", err)
	}
	if !strings.Contains(parseErr.Error(), "different format") {
		t.Fatalf("error should suggest an alternative: %v", parseErr)
	}
}

func TestExtractDOCXWithGenericContentType(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Jane Doe Python React</w:t></w:r></w:p></w:body></w:document>`)
	doc := Document{Data: data, FileName: "resume.docx", ContentType: "application/octet-stream"}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if res.Text != "Jane Doe Python React" {
		t.Fatalf("expected document text recovered, got %q", res.Text)
	}
	if res.LowConfidence {
		t.Fatal("a parsed docx must not be low confidence")
	}
}

func TestExtractBinaryRecoversPrintableRuns(t *testing.T) {
	payload := append([]byte{0x00, 0x01, 0x02}, []byte("Senior Software Engineer at Example")...)
	payload = append(payload, 0xff, 0xfe)
	doc := Document{Data: payload, FileName: "resume.bin", ContentType: "application/octet-stream"}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("binary extraction must not fail: %v", err)
	}
	if !res.LowConfidence {
		t.Fatal("binary recovery must be flagged low confidence")
	}
	if !strings.Contains(res.Text, "Senior Software Engineer") {
		t.Fatalf("expected printable run recovered, got %q", res.Text)
	}
}

func TestExtractBinaryNoRunsReturnsPlaceholder(t *testing.T) {
	doc := Document{Data: []byte{0x00, 0x01, 0x02, 0x03}, FileName: "junk.bin", ContentType: "application/octet-stream"}
	res, err := Extract(doc)
	if err != nil {
		t.Fatalf("binary extraction must not fail: %v", err)
	}
	if !strings.Contains(res.Text, "No readable text") {
		t.Fatalf("expected placeholder, got %q", res.Text)
	}
}

func TestDetectFormatFallsBackToExtension(t *testing.T) {
	cases := []struct {
		contentType string
		fileName    string
		want        Format
	}{
		{"text/plain", "x.bin", FormatText},
		{"", "resume.csv", FormatTabular},
		{"application/zip", "resume.docx", FormatRichText},
		{"", "resume.pdf", FormatBinary},
		{"", "mystery", FormatUnknown},
		{"application/octet-stream", "resume.docx", FormatRichText},
		{"application/octet-stream", "resume.csv", FormatTabular},
		{"application/octet-stream", "resume.txt", FormatText},
		{"application/octet-stream", "resume.bin", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.contentType, tc.fileName); got != tc.want {
			t.Errorf("DetectFormat(%q, %q) = %s, want %s", tc.contentType, tc.fileName, got, tc.want)
		}
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
