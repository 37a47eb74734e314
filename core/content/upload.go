package content

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/videoteca/core"
)

var (
	extRegex = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

	// randomID returns 9 random lowercase alphanumeric characters. mockable
	randomID = func() string {
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	}
)

// UploadFile is a video received from a client.
type UploadFile struct {
	Name string
	Type string // MIME type as declared by the client
	Size int64
	Open func() (io.ReadCloser, error)
}

// NewUpload contains the information needed to attach videos to a module.
type NewUpload struct {
	ModuleKey
	Files []UploadFile
}

// Validate applies the upload rules in order, the first failure wins:
// complete classification, slugs, at least 1 and at most `MaxFilesPerUpload` files,
// each of an allowed type and no bigger than `MaxFileSize`.
func (nu *NewUpload) Validate(validate *validator.Validate, limits core.StorageConfig) error {
	nu.ModuleKey = NewModuleKey(nu.Subject, nu.SubSubject, nu.Module)
	if err := nu.ModuleKey.Validate(validate, ErrIncompleteClassification); err != nil {
		return err
	}

	if len(nu.Files) == 0 {
		return core.NewValidationError(ErrNoVideos)
	}
	if len(nu.Files) > limits.MaxFilesPerUpload {
		return core.NewValidationError(fmt.Errorf("maximum of %d videos per upload", limits.MaxFilesPerUpload))
	}

	for _, f := range nu.Files {
		if !isAllowedType(f.Type, limits.AllowedTypes) {
			return core.NewValidationError(fmt.Errorf("file %s is not MP4", f.Name))
		}
		if f.Size > limits.MaxFileSize {
			return core.NewValidationError(fmt.Errorf("file %s is too large (max %dMB)", f.Name, limits.MaxFileSizeMB()))
		}
	}
	return nil
}

func isAllowedType(typ string, allowed []string) bool {
	for _, a := range allowed {
		if typ == a {
			return true
		}
	}
	return false
}

// NewFileName generates the stored name of an uploaded file: `<unix millis>-<random id><ext>`.
// The extension of the original name is kept when it is a plain alphanumeric one.
func NewFileName(originalName string, t time.Time) string {
	ext := filepath.Ext(originalName)
	if !extRegex.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d-%s%s", t.UnixMilli(), randomID(), ext)
}

// IsValidFileName reports whether name may designate a video inside a module directory.
func IsValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." || name == MetadataFileName {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
