// Package document turns uploaded resumes and job descriptions into plain text.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Kind is a supported document format
type Kind string

const (
	KindUnknown Kind = ""
	KindText    Kind = "txt"
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extractor reads text out of txt, pdf and docx files.
// Every failure is logged and reported as empty text.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates a document text extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger.Named("extract")}
}

// Allowed reports whether filename carries a supported extension
func (e *Extractor) Allowed(filename string) bool {
	return kindFromExtension(filename) != KindUnknown
}

// Extract returns the text of a document, or "" when it cannot be read.
// Files without an extension are identified by content.
func (e *Extractor) Extract(filename string, data []byte) string {
	if len(data) == 0 {
		return ""
	}

	kind := KindOf(filename, data)

	var (
		text string
		err  error
	)
	switch kind {
	case KindText:
		text, err = extractPlainText(data)
	case KindPDF:
		text, err = extractPDFText(data)
	case KindDOCX:
		text, err = extractDOCXText(data)
	default:
		err = fmt.Errorf("unsupported document type")
	}

	if err != nil {
		e.logger.Warn("failed to extract text",
			zap.String("filename", filename),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return ""
	}

	e.logger.Debug("extracted text",
		zap.String("filename", filename),
		zap.String("kind", string(kind)),
		zap.Int("chars", utf8.RuneCountInString(text)))

	return text
}

// KindOf identifies a document by extension, falling back to content sniffing
// when the name has no extension
func KindOf(filename string, data []byte) Kind {
	if filepath.Ext(filename) != "" {
		return kindFromExtension(filename)
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/pdf"):
		return KindPDF
	case mtype.Is(docxMIME):
		return KindDOCX
	case mtype.Is("text/plain"):
		return KindText
	}
	return KindUnknown
}

func kindFromExtension(filename string) Kind {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "txt":
		return KindText
	case "pdf":
		return KindPDF
	case "docx":
		return KindDOCX
	}
	return KindUnknown
}

// extractPlainText decodes a text file, replacing invalid UTF-8 (e.g. Windows-1252 quotes) with spaces
func extractPlainText(data []byte) (string, error) {
	text := strings.ToValidUTF8(string(data), " ")
	return strings.TrimPrefix(text, "\ufeff"), nil
}

// extractPDFText concatenates the plain text of every page
func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return string(out), nil
}

// extractDOCXText returns the paragraphs of word/document.xml, one per line
func extractDOCXText(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if strings.EqualFold(f.Name, "word/document.xml") {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer rc.Close()

	return docxParagraphs(rc)
}

func docxParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		buf       strings.Builder
		paragraph strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err == nil {
					paragraph.WriteString(text)
				}
			case "tab":
				paragraph.WriteByte('\t')
			case "br", "cr":
				paragraph.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				buf.WriteString(paragraph.String())
				buf.WriteByte('\n')
				paragraph.Reset()
			}
		}
	}

	return buf.String(), nil
}
