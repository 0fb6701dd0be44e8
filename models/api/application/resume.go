package applicationapimodels

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const (
	ContentTypePdf  = "application/pdf"
	ContentTypeDoc  = "application/msword"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ResumeSniffLen - how many leading bytes ValidateResume needs to recognize a format
const ResumeSniffLen = 8

var (
	magicPdf = []byte("%PDF-")
	magicDoc = []byte{0xD0, 0xCF, 0x11, 0xE0}
	magicZip = []byte("PK\x03\x04")
)

var resumeTypes = map[string]struct {
	contentType string
	magic       []byte
}{
	".pdf":  {ContentTypePdf, magicPdf},
	".doc":  {ContentTypeDoc, magicDoc},
	".docx": {ContentTypeDocx, magicZip},
}

var ErrResumeRequired = errors.New("Resume file is required")

// CheckResumeMeta checks what is known before the upload is read: presence, size and extension.
func CheckResumeMeta(fileName string, size, maxSize int64) error {
	if fileName == "" || size == 0 {
		return ErrResumeRequired
	}
	if size > maxSize {
		return errors.Errorf("Resume file must be %s or smaller", humanizeLimit(maxSize))
	}
	if _, ok := resumeTypes[strings.ToLower(filepath.Ext(fileName))]; !ok {
		return errors.New("Only PDF or Word documents are allowed")
	}
	return nil
}

// ValidateResume checks the upload size, the extension and the leading bytes of the file.
// Returns the content type the file will be stored and served with.
func ValidateResume(fileName string, size int64, head []byte, maxSize int64) (contentType string, err error) {
	if err = CheckResumeMeta(fileName, size, maxSize); err != nil {
		return "", err
	}
	kind := resumeTypes[strings.ToLower(filepath.Ext(fileName))]
	if !bytes.HasPrefix(head, kind.magic) {
		return "", errors.New("Resume file content does not match its extension")
	}
	return kind.contentType, nil
}

// humanizeLimit renders 5242880 as "5MB".
func humanizeLimit(size int64) string {
	if size > 0 && size%humanize.MiByte == 0 {
		return fmt.Sprintf("%dMB", size/humanize.MiByte)
	}
	return humanize.IBytes(uint64(size))
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileName keeps a safe subset of the base name, used for object keys and Content-Disposition.
func SanitizeFileName(fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "resume"
	}
	if len(name) > 100 {
		ext := filepath.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = name[:100-len(ext)] + ext
	}
	return name
}
