// Package catalog holds the static Subject -> SubSubject -> Module tree videos are attached to.
package catalog

import (
	"github.com/trezcool/videoteca/core"
)

var (
	// errors
	ErrSubjectNotFound    = core.NewNotFoundError("subject not found")
	ErrSubSubjectNotFound = core.NewNotFoundError("sub-subject not found")
	ErrModuleNotFound     = core.NewNotFoundError("module not found")
)

type (
	Module struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	SubSubject struct {
		Name    string   `json:"name"`
		Slug    string   `json:"slug"`
		Modules []Module `json:"modules"`
	}

	Subject struct {
		Title       string       `json:"title"`
		Slug        string       `json:"slug"`
		SubSubjects []SubSubject `json:"subSubjects"`
	}
)

func (s SubSubject) clone() SubSubject {
	s.Modules = append([]Module(nil), s.Modules...)
	return s
}

func (s Subject) clone() Subject {
	subs := make([]SubSubject, 0, len(s.SubSubjects))
	for _, ss := range s.SubSubjects {
		subs = append(subs, ss.clone())
	}
	s.SubSubjects = subs
	return s
}

// TotalModules counts the modules across all sub-subjects of s.
func (s Subject) TotalModules() int {
	var n int
	for _, ss := range s.SubSubjects {
		n += len(ss.Modules)
	}
	return n
}

// Subjects returns a copy of the whole catalog tree.
func Subjects() []Subject {
	all := make([]Subject, 0, len(subjects))
	for _, s := range subjects {
		all = append(all, s.clone())
	}
	return all
}

func FindSubject(slug string) (Subject, error) {
	for _, s := range subjects {
		if s.Slug == slug {
			return s.clone(), nil
		}
	}
	return Subject{}, ErrSubjectNotFound
}

func FindSubSubject(subjectSlug, subSubjectSlug string) (Subject, SubSubject, error) {
	subj, err := FindSubject(subjectSlug)
	if err != nil {
		return Subject{}, SubSubject{}, err
	}
	for _, ss := range subj.SubSubjects {
		if ss.Slug == subSubjectSlug {
			return subj, ss, nil
		}
	}
	return Subject{}, SubSubject{}, ErrSubSubjectNotFound
}

// FindModule resolves the 3 slugs against the catalog, failing on the first unknown level.
func FindModule(subjectSlug, subSubjectSlug, moduleSlug string) (Subject, SubSubject, Module, error) {
	subj, ss, err := FindSubSubject(subjectSlug, subSubjectSlug)
	if err != nil {
		return Subject{}, SubSubject{}, Module{}, err
	}
	for _, m := range ss.Modules {
		if m.Slug == moduleSlug {
			return subj, ss, m, nil
		}
	}
	return Subject{}, SubSubject{}, Module{}, ErrModuleNotFound
}

// SubSubjectsBySubject returns the sub-subjects of a subject, or an empty slice if it is unknown.
func SubSubjectsBySubject(subjectSlug string) []SubSubject {
	subj, err := FindSubject(subjectSlug)
	if err != nil {
		return []SubSubject{}
	}
	return subj.SubSubjects
}

// ModulesBySubjectAndSubSubject returns the modules of a sub-subject, or an empty slice if it is unknown.
func ModulesBySubjectAndSubSubject(subjectSlug, subSubjectSlug string) []Module {
	_, ss, err := FindSubSubject(subjectSlug, subSubjectSlug)
	if err != nil {
		return []Module{}
	}
	return ss.Modules
}
