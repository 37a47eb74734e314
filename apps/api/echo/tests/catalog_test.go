package tests

import (
	"net/http"
	"testing"

	. "github.com/trezcool/videoteca/apps/api/echo"
	"github.com/trezcool/videoteca/core/catalog"
)

func Test_catalogApi(t *testing.T) {
	app := setup(t)

	goa, err := catalog.FindSubject("goa")
	if err != nil {
		t.Fatalf("FindSubject() failed: %v", err)
	}
	_, estOS, err := catalog.FindSubSubject("goa", "estacao-os")
	if err != nil {
		t.Fatalf("FindSubSubject() failed: %v", err)
	}

	tests := []httpTest{
		{
			name: "All subjects", path: "/v1/catalog",
			wantCode: http.StatusOK, wantData: marchallObj(t, SubjectsResponse{Subjects: catalog.Subjects()}),
		},
		{
			name: "Sub-subjects", path: "/v1/catalog/goa",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SubSubjectsResponse{Subject: goa.Title, SubSubjects: goa.SubSubjects}),
		},
		{
			name: "Modules", path: "/v1/catalog/goa/estacao-os",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, ModulesResponse{Subject: goa.Title, SubSubject: estOS.Name, Modules: estOS.Modules}),
		},
		{
			name: "Unknown subject", path: "/v1/catalog/history",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "Unknown sub-subject", path: "/v1/catalog/goa/estacao-lol",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "sub-subject not found"}),
		},
	}
	runHTTPTests(t, app, tests)
}
