package resumetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMimeFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "cv.pdf", want: MimePDF},
		{name: "CV.PDF", want: MimePDF},
		{name: "resume.docx", want: MimeDocx},
		{name: "notes.txt", want: MimePlain},
		{name: "resume.doc", want: ""},
		{name: "resume", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MimeFromFilename(tt.name))
		})
	}
}

func TestExtract_PlainText(t *testing.T) {
	got, err := Extract("text/plain; charset=utf-8", []byte("Jane Doe\nGo developer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", got)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("image/png", []byte{0x89, 0x50})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtract_CorruptDocuments(t *testing.T) {
	_, err := Extract(MimePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = Extract(MimeDocx, []byte("not a zip"))
	assert.Error(t, err)
}

func TestDocumentText(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Skills: </w:t></w:r><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>SQL</w:t></w:r></w:p>
<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r></w:p>
</w:body>
</w:document>`

	got, err := documentText(body)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go\tSQL\nLine one\nLine two\n", got)
}

func TestDocumentText_Malformed(t *testing.T) {
	_, err := documentText("<w:p><w:t>open")
	assert.Error(t, err)
}
