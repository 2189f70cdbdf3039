package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract([]byte("Jane Tan\r\n\r\n\r\n\r\nCustomer service, Excel.\n"), ".txt")
	require.NoError(t, err)
	// CRLF normalized, blank-line runs collapsed, trimmed.
	assert.Equal(t, "Jane Tan\n\nCustomer service, Excel.", text)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	text, err := Extract([]byte("hello"), ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := Extract([]byte("x"), ".odt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resume format")
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract([]byte("not a pdf"), ".pdf")
	assert.Error(t, err)
}

func TestExtract_CorruptDocx(t *testing.T) {
	_, err := Extract([]byte("not a zip archive"), ".docx")
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Experienced analyst."), 0600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Experienced analyst.", text)
}

func TestExtractFile_Missing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
