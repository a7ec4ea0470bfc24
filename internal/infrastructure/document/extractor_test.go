package document

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"word/document.xml": documentXML,
	}
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Skills: Python, </w:t></w:r><w:r><w:t>Docker</w:t></w:r></w:p>
</w:body>
</w:document>`

func TestExtractor_Allowed(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.PDF", true},
		{"resume.docx", true},
		{"resume.txt", true},
		{"resume.doc", false},
		{"resume.exe", false},
		{"resume", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Allowed(tt.filename))
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(nil)

	t.Run("plain text", func(t *testing.T) {
		assert.Equal(t, "Python and Go", e.Extract("resume.txt", []byte("Python and Go")))
	})

	t.Run("plain text byte order mark is dropped", func(t *testing.T) {
		assert.Equal(t, "Go", e.Extract("resume.txt", []byte("\ufeffGo")))
	})

	t.Run("invalid utf-8 bytes become spaces", func(t *testing.T) {
		// Windows-1252 curly quotes around Go
		got := e.Extract("resume.txt", []byte("Built \x93Go\x94 services with Docker"))
		assert.Equal(t, "Built  Go  services with Docker", got)
	})

	t.Run("docx paragraphs become lines", func(t *testing.T) {
		got := e.Extract("resume.docx", buildDOCX(t, sampleDocumentXML))
		assert.Equal(t, "Jane Doe\nSkills: Python, Docker\n", got)
	})

	t.Run("corrupt docx", func(t *testing.T) {
		assert.Equal(t, "", e.Extract("resume.docx", []byte("not a zip")))
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		assert.Equal(t, "", e.Extract("resume.pdf", []byte("%PDF-1.4 garbage")))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		assert.Equal(t, "", e.Extract("resume.rtf", []byte("{\\rtf1 Go}")))
	})

	t.Run("empty data", func(t *testing.T) {
		assert.Equal(t, "", e.Extract("resume.txt", nil))
	})

	t.Run("no extension is sniffed", func(t *testing.T) {
		assert.Equal(t, "Kubernetes and Terraform", e.Extract("resume", []byte("Kubernetes and Terraform")))
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindPDF, KindOf("cv.pdf", nil))
	assert.Equal(t, KindDOCX, KindOf("cv.Docx", nil))
	assert.Equal(t, KindUnknown, KindOf("cv.odt", []byte("hello")))
	assert.Equal(t, KindText, KindOf("cv", []byte("plain words")))
	assert.Equal(t, KindPDF, KindOf("cv", []byte("%PDF-1.7\n")))
}
