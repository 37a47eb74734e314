package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/storage/database"
)

// Logger is a core.Logger writing to the test log. Messages are kept for assertions.
type Logger struct {
	t        testing.TB
	mu       sync.Mutex
	messages []string
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t testing.TB) *Logger {
	return &Logger{t: t}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	l.messages = append(l.messages, level+": "+msg)
	l.mu.Unlock()
	l.t.Logf("%s: %s %v", level, msg, args)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", msg, args)
	l.t.FailNow()
}

func (l *Logger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// NewValidator returns a validator set up like the app's.
func NewValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

// VideoFile returns an upload of data declared as an MP4 video.
func VideoFile(name string, data []byte) content.UploadFile {
	return UploadFile(name, "video/mp4", data)
}

func UploadFile(name, typ string, data []byte) content.UploadFile {
	return content.UploadFile{
		Name: name,
		Type: typ,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FakeVideo returns n bytes standing for a video.
func FakeVideo(n int) []byte {
	return []byte(strings.Repeat("v", n))
}

// Upload stores files into the module through svc, failing the test on error.
func Upload(t testing.TB, svc *content.Service, subject, subSubject, module string, files ...content.UploadFile) []content.Video {
	t.Helper()
	nu := content.NewUpload{
		ModuleKey: content.NewModuleKey(subject, subSubject, module),
		Files:     files,
	}
	videos, err := svc.Upload(context.Background(), nu)
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}
	return videos
}

// ModulePath returns the public path of a module's videos.
func ModulePath(subject, subSubject, module string) string {
	return fmt.Sprintf("/videos/%s/%s/%s/", subject, subSubject, module)
}

// PrepareDB opens the PostgreSQL test database described by the TEST_DATABASE_* env vars,
// applies the migrations and empties it. Tests are skipped when TEST_DATABASE_HOST is unset.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	host := os.Getenv("TEST_DATABASE_HOST")
	if host == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}

	conf := core.NewTestConfig(t.TempDir())
	conf.Database = core.DatabaseConfig{
		Engine:     "postgres",
		Host:       host,
		Port:       envOr("TEST_DATABASE_PORT", "5432"),
		Name:       envOr("TEST_DATABASE_NAME", "videoteca_test"),
		User:       envOr("TEST_DATABASE_USER", "postgres"),
		Password:   os.Getenv("TEST_DATABASE_PASSWORD"),
		DisableTLS: true,
	}
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if _, err = db.Exec("TRUNCATE progress"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
