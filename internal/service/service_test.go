package service

import (
	"bytes"
	"database/sql"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"petmatch-be/internal/database"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh SQLite database in a temp directory and applies
// the migrations.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, filepath.Join("..", "..", "migrations")))
	return db
}

// makeFileHeader builds a real multipart.FileHeader the way gin would
// hand it to the service.
func makeFileHeader(t *testing.T, filename string) *multipart.FileHeader {
	return makeFileHeaderSized(t, filename, []byte("fake image bytes"))
}

func makeFileHeaderSized(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["image"][0]
}

// stubMailer records sends; it can pose as unconfigured or as a
// configured transport that fails.
type stubMailer struct {
	configured bool
	failSend   bool
	sentTo     []string
	lastLink   string
}

func (m *stubMailer) Configured() bool { return m.configured }

func (m *stubMailer) SendPasswordReset(to, name, resetLink string) error {
	if m.failSend {
		return errors.New("smtp connection refused")
	}
	m.sentTo = append(m.sentTo, to)
	m.lastLink = resetLink
	return nil
}
