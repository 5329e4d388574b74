package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"virtualab/apperror"
	"virtualab/config"
)

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestPasswordHashing(t *testing.T) {
	config.AppConfig = &config.Config{SaltRound: bcrypt.MinCost}

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", ""), "users without a password can never log in")
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword(GeneratedPasswordLength)
	require.NoError(t, err)
	b, err := GeneratePassword(GeneratedPasswordLength)
	require.NoError(t, err)

	assert.Len(t, a, GeneratedPasswordLength)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r))
	}
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestReadUploadDetectsType(t *testing.T) {
	up, err := ReadUpload(multipartFile(t, "picture.bin", pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", up.MIME.String())
	assert.True(t, strings.HasSuffix(up.Filename, ".png"))
	assert.NoError(t, up.RequireImage())
	assert.NoError(t, up.RequireMedia("image"))
	assert.True(t, apperror.Is(up.RequireMedia("video"), apperror.KindValidation))
	assert.True(t, apperror.Is(up.RequireMedia("audio"), apperror.KindValidation))
}

func TestReadUploadRejectsText(t *testing.T) {
	up, err := ReadUpload(multipartFile(t, "fake.png", []byte("just some text")))
	require.NoError(t, err)
	assert.True(t, apperror.Is(up.RequireImage(), apperror.KindValidation))

	_, err = ReadUpload(multipartFile(t, "empty.png", nil))
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestNewFilenameUnique(t *testing.T) {
	assert.NotEqual(t, NewFilename(".mp4"), NewFilename(".mp4"))
	assert.True(t, strings.HasSuffix(NewFilename(".mp4"), ".mp4"))
}
