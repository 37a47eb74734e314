package content

import (
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core"
)

// MetadataFileName is the name of the sidecar file stored next to the videos of a module.
const MetadataFileName = "metadata.json"

var (
	// errors
	ErrNoMetadata               = errors.New("module has no metadata")
	ErrIncompleteClassification = errors.New("incomplete classification")
	ErrMissingParams            = errors.New("required parameters: subject, subSubject, module")
	ErrNoVideos                 = errors.New("no video selected")
	ErrInvalidFileName          = errors.New("invalid file name")
	ErrVideoNotFound            = core.NewNotFoundError("file not found")
	ErrModuleNotFound           = core.NewNotFoundError("module not found")
)

// ModuleKey addresses a catalog module, and the directory holding its videos.
type ModuleKey struct {
	Subject    string `json:"subject" validate:"required,slug"`
	SubSubject string `json:"subSubject" validate:"required,slug"`
	Module     string `json:"module" validate:"required,slug"`
}

func NewModuleKey(subject, subSubject, module string) ModuleKey {
	return ModuleKey{
		Subject:    core.CleanString(subject),
		SubSubject: core.CleanString(subSubject),
		Module:     core.CleanString(module),
	}
}

// String returns the slash separated relative path of the module, eg. "goa/estacao-os/modulo-1".
func (k ModuleKey) String() string {
	return path.Join(k.Subject, k.SubSubject, k.Module)
}

func (k ModuleKey) isComplete() bool {
	return k.Subject != "" && k.SubSubject != "" && k.Module != ""
}

// Validate checks that all 3 slugs are set and are safe path segments.
// `incomplete` is returned when one of them is missing.
func (k ModuleKey) Validate(validate *validator.Validate, incomplete error) error {
	if !k.isComplete() {
		return core.NewValidationError(incomplete)
	}
	return validate.Struct(k)
}

type Video struct {
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"uploadDate"`
	Type         string    `json:"type"`
}

// Metadata is the content of a module's sidecar file.
type Metadata struct {
	Videos      []Video   `json:"videos"`
	LastUpdated time.Time `json:"lastUpdated"`
	Subject     string    `json:"subject"`
	SubSubject  string    `json:"subSubject"`
	Module      string    `json:"module"`
}

func (m Metadata) HasContent() bool {
	return len(m.Videos) > 0
}

func (m Metadata) TotalSize() int64 {
	var total int64
	for _, v := range m.Videos {
		total += v.Size
	}
	return total
}

func (m Metadata) indexOf(fileName string) int {
	for i, v := range m.Videos {
		if v.FileName == fileName {
			return i
		}
	}
	return -1
}

// ModuleContent is a module with uploaded videos, as listed by Service.List.
type ModuleContent struct {
	Subject     string    `json:"subject"`
	SubSubject  string    `json:"subSubject"`
	Module      string    `json:"module"`
	Videos      []Video   `json:"videos"`
	LastUpdated time.Time `json:"lastUpdated"`
	VideoCount  int       `json:"videoCount"`
	TotalSize   int64     `json:"totalSize"`
}

type (
	SubjectRef struct {
		Title string `json:"title"`
		Slug  string `json:"slug"`
	}

	NodeRef struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	// ModuleDetail describes a catalog module and whatever was uploaded to it.
	ModuleDetail struct {
		Subject     SubjectRef `json:"subject"`
		SubSubject  NodeRef    `json:"subSubject"`
		Module      NodeRef    `json:"module"`
		Videos      []Video    `json:"videos"`
		VideoCount  int        `json:"videoCount"`
		TotalSize   int64      `json:"totalSize"`
		LastUpdated *time.Time `json:"lastUpdated"`
		Exists      bool       `json:"exists"`
	}
)

type (
	ModuleStats struct {
		Name        string     `json:"name"`
		Slug        string     `json:"slug"`
		HasContent  bool       `json:"hasContent"`
		VideoCount  int        `json:"videoCount"`
		LastUpdated *time.Time `json:"lastUpdated"`
	}

	SubSubjectStats struct {
		Name               string        `json:"name"`
		Slug               string        `json:"slug"`
		TotalModules       int           `json:"totalModules"`
		ModulesWithContent int           `json:"modulesWithContent"`
		TotalVideos        int           `json:"totalVideos"`
		Modules            []ModuleStats `json:"modules"`
	}

	SubjectStats struct {
		Title              string            `json:"title"`
		Slug               string            `json:"slug"`
		TotalModules       int               `json:"totalModules"`
		ModulesWithContent int               `json:"modulesWithContent"`
		TotalVideos        int               `json:"totalVideos"`
		TotalSize          int64             `json:"totalSize"`
		LastUpdated        *time.Time        `json:"lastUpdated"`
		SubSubjects        []SubSubjectStats `json:"subSubjects"`
	}

	StatsSummary struct {
		TotalSubjects           int   `json:"totalSubjects"`
		TotalModules            int   `json:"totalModules"`
		TotalModulesWithContent int   `json:"totalModulesWithContent"`
		TotalVideos             int   `json:"totalVideos"`
		TotalSize               int64 `json:"totalSize"`
	}

	Stats struct {
		Subjects []SubjectStats `json:"subjects"`
		Summary  StatsSummary   `json:"summary"`
	}
)

// PruneReport lists what Service.Prune cleaned up, as module relative paths.
type PruneReport struct {
	RemovedFiles   []string `json:"removedFiles"`
	DroppedRecords []string `json:"droppedRecords"`
	RemovedModules []string `json:"removedModules"`
	Skipped        []string `json:"skipped"`
}

func (r PruneReport) IsEmpty() bool {
	return len(r.RemovedFiles) == 0 && len(r.DroppedRecords) == 0 && len(r.RemovedModules) == 0
}
