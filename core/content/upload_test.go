package content

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/videoteca/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

func file(name, typ string, size int64) UploadFile {
	return UploadFile{
		Name: name,
		Type: typ,
		Size: size,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(nil)), nil },
	}
}

func TestNewUpload_Validate(t *testing.T) {
	validate := newValidator()
	limits := core.NewTestConfig("").Storage

	mp4 := func(name string) UploadFile { return file(name, "video/mp4", 1024) }
	sixFiles := []UploadFile{mp4("1.mp4"), mp4("2.mp4"), mp4("3.mp4"), mp4("4.mp4"), mp4("5.mp4"), mp4("6.mp4")}

	tests := []struct {
		name        string
		upload      NewUpload
		wantErr     string
		wantInvalid bool // validator.ValidationErrors
	}{
		{
			name:    "missing module",
			upload:  NewUpload{ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os"}, Files: []UploadFile{mp4("a.mp4")}},
			wantErr: "incomplete classification",
		},
		{
			name:    "blank subject",
			upload:  NewUpload{ModuleKey: ModuleKey{Subject: "  ", SubSubject: "estacao-os", Module: "modulo-1"}},
			wantErr: "incomplete classification",
		},
		{
			name:        "path traversal",
			upload:      NewUpload{ModuleKey: ModuleKey{Subject: "..", SubSubject: "estacao-os", Module: "modulo-1"}, Files: []UploadFile{mp4("a.mp4")}},
			wantInvalid: true,
		},
		{
			name:        "uppercase slug",
			upload:      NewUpload{ModuleKey: ModuleKey{Subject: "GOA", SubSubject: "estacao-os", Module: "modulo-1"}, Files: []UploadFile{mp4("a.mp4")}},
			wantInvalid: true,
		},
		{
			name:    "no files",
			upload:  NewUpload{ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"}},
			wantErr: "no video selected",
		},
		{
			name:    "too many files",
			upload:  NewUpload{ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"}, Files: append(sixFiles, mp4("7.mp4"))},
			wantErr: "maximum of 6 videos per upload",
		},
		{
			name: "not mp4",
			upload: NewUpload{
				ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"},
				Files:     []UploadFile{mp4("a.mp4"), file("b.avi", "video/x-msvideo", 10)},
			},
			wantErr: "file b.avi is not MP4",
		},
		{
			name: "type checked before size",
			upload: NewUpload{
				ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"},
				Files:     []UploadFile{file("big.mov", "video/quicktime", 600*core.MiB)},
			},
			wantErr: "file big.mov is not MP4",
		},
		{
			name: "too large",
			upload: NewUpload{
				ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"},
				Files:     []UploadFile{file("big.mp4", "video/mp4", 500*core.MiB+1)},
			},
			wantErr: "file big.mp4 is too large (max 500MB)",
		},
		{
			name: "exactly max size",
			upload: NewUpload{
				ModuleKey: ModuleKey{Subject: "goa", SubSubject: "estacao-os", Module: "modulo-1"},
				Files:     []UploadFile{file("big.mp4", "video/mp4", 500*core.MiB)},
			},
		},
		{
			name:   "six files",
			upload: NewUpload{ModuleKey: ModuleKey{Subject: " goa ", SubSubject: "estacao-os", Module: "modulo-1"}, Files: sixFiles},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := tt.upload
			err := nu.Validate(validate, limits)
			switch {
			case tt.wantInvalid:
				var vErrs validator.ValidationErrors
				assert.ErrorAs(t, err, &vErrs)
			case tt.wantErr != "":
				require.Error(t, err)
				assert.IsType(t, &core.ValidationError{}, err)
				assert.Equal(t, tt.wantErr, err.Error())
			default:
				assert.NoError(t, err)
				assert.Equal(t, "goa", nu.Subject) // cleaned
			}
		})
	}
}

func TestNewFileName(t *testing.T) {
	origRandomID := randomID
	defer func() { randomID = origRandomID }()
	randomID = func() string { return "abc123xyz" }

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		original string
		want     string
	}{
		{original: "aula.mp4", want: "1709287200000-abc123xyz.mp4"},
		{original: "Aula 1 - intro.MP4", want: "1709287200000-abc123xyz.MP4"},
		{original: "no-extension", want: "1709287200000-abc123xyz"},
		{original: "weird.mp4;rm -rf", want: "1709287200000-abc123xyz"},
		{original: "../../etc/passwd.mp4", want: "1709287200000-abc123xyz.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFileName(tt.original, ts))
		})
	}
}

func Test_randomID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := randomID()
		assert.Regexp(t, `^[a-z0-9]{9}$`, id)
		seen[id] = true
	}
	assert.Len(t, seen, 100)
}

func TestIsValidFileName(t *testing.T) {
	valid := []string{"1709287200000-abc123xyz.mp4", "video.mp4", "a"}
	invalid := []string{"", ".", "..", "metadata.json", ".hidden", "../x.mp4", "a/b.mp4", `a\b.mp4`}

	for _, name := range valid {
		assert.True(t, IsValidFileName(name), name)
	}
	for _, name := range invalid {
		assert.False(t, IsValidFileName(name), name)
	}
}

func Test_moduleLocks(t *testing.T) {
	locks := newModuleLocks()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("goa/estacao-os/modulo-1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, locks.len(), "unused locks are dropped")

	// other modules are not blocked
	unlock := locks.Lock("goa/estacao-os/modulo-1")
	done := make(chan struct{})
	go func() {
		locks.Lock("goa/estacao-os/modulo-2")()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock of another module blocked")
	}
	unlock()
}
