package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/auth"
	"github.com/trezcool/videoteca/core/content"
	"github.com/trezcool/videoteca/core/progress"
	"github.com/trezcool/videoteca/storage/database/inmem"
	"github.com/trezcool/videoteca/storage/filestore"
	"github.com/trezcool/videoteca/tests"
)

const adminPassword = "s3cr3t-pa55"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testApp struct {
	Server
	conf       *core.Config
	contentSvc *content.Service
}

// setup builds a server storing videos in a temporary dir, with an in-memory progress backend.
// Options are applied to the config before the server is created.
func setup(t *testing.T, opts ...func(*core.Config)) testApp {
	t.Helper()

	conf := core.NewTestConfig(t.TempDir())
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	conf.Admin.PasswordHash = hash
	for _, opt := range opts {
		opt(conf)
	}

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	logger := testutil.NewLogger(t)

	contentSvc := content.NewService(filestore.NewStore(conf.Storage.VideosDir), logger)
	progressSvc := progress.NewService(inmemdb.NewProgressRepository(inmemdb.Open()), validate)

	return testApp{
		Server: NewServer(ServerDeps{
			Conf:           conf,
			Logger:         logger,
			ContentSvc:     contentSvc,
			ProgressSvc:    progressSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		}),
		conf:       conf,
		contentSvc: contentSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

type formFile struct {
	name string
	typ  string
	data []byte
}

func mp4(name string, size int) formFile {
	return formFile{name: name, typ: "video/mp4", data: testutil.FakeVideo(size)}
}

// newUploadRequest builds a multipart upload of `files` (field "videos") into the module s/ss/m.
func newUploadRequest(t *testing.T, token, s, ss, m string, files ...formFile) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, val := range map[string]string{"subject": s, "subSubject": ss, "module": m} {
		if val == "" {
			continue
		}
		if err := w.WriteField(field, val); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="videos"; filename="%s"`, f.name))
		h.Set("Content-Type", f.typ)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
		if _, err = part.Write(f.data); err != nil {
			t.Fatalf("newUploadRequest() failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func getToken(t *testing.T, conf *core.Config) string {
	t.Helper()
	token, err := auth.GenerateToken(auth.NewAdminClaims(conf.Admin.Username, conf), conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, data []byte, obj interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarchallObj() failed: %v; data %s", err, data)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
