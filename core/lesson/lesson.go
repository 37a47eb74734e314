// Package lesson holds the static pages learners browse: module overviews and the lesson contents inside them.
package lesson

import (
	"sort"
	"strings"

	"github.com/trezcool/videoteca/core"
)

// ErrNotFound is returned for unknown pages.
var ErrNotFound = core.NewNotFoundError("page not found")

type (
	// ContentItem is one entry of a module section: "video", "text" or "image".
	ContentItem struct {
		Type     string `json:"type"`
		Title    string `json:"title"`
		Duration string `json:"duration"`
	}

	ModuleSection struct {
		Title       string        `json:"title"`
		Description string        `json:"description"`
		Completed   bool          `json:"completed"`
		Content     []ContentItem `json:"content"`
	}

	RelatedModule struct {
		Title    string `json:"title"`
		Duration string `json:"duration"`
	}

	ModulePage struct {
		Title          string          `json:"title"`
		Description    string          `json:"description"`
		Level          string          `json:"level"`
		Duration       string          `json:"duration"`
		Participants   int             `json:"participants"`
		Progress       int             `json:"progress"`
		Objectives     []string        `json:"objectives"`
		Resources      []string        `json:"resources"`
		Sections       []ModuleSection `json:"sections"`
		RelatedModules []RelatedModule `json:"relatedModules"`
	}
)

type (
	Resource struct {
		Name string `json:"name"`
		Type string `json:"type"`
		URL  string `json:"url,omitempty"`
	}

	ContentSection struct {
		Title   string   `json:"title"`
		Content []string `json:"content"`
		Image   string   `json:"image,omitempty"`
	}

	// ContentPage is a lesson: "Artigo", "Vídeo", "Infográfico" or "Quiz".
	ContentPage struct {
		ID            string           `json:"id"`
		Title         string           `json:"title"`
		Description   string           `json:"description"`
		Type          string           `json:"type"`
		Duration      string           `json:"duration"`
		Progress      int              `json:"progress"`
		FeaturedImage string           `json:"featuredImage,omitempty"`
		Sections      []ContentSection `json:"sections"`
		KeyPoints     []string         `json:"keyPoints"`
		Resources     []Resource       `json:"resources"`
	}
)

func (p ModulePage) clone() ModulePage {
	p.Objectives = append([]string(nil), p.Objectives...)
	p.Resources = append([]string(nil), p.Resources...)
	p.RelatedModules = append([]RelatedModule(nil), p.RelatedModules...)
	sections := make([]ModuleSection, 0, len(p.Sections))
	for _, s := range p.Sections {
		s.Content = append([]ContentItem(nil), s.Content...)
		sections = append(sections, s)
	}
	p.Sections = sections
	return p
}

func (p ContentPage) clone() ContentPage {
	p.KeyPoints = append([]string(nil), p.KeyPoints...)
	p.Resources = append([]Resource(nil), p.Resources...)
	sections := make([]ContentSection, 0, len(p.Sections))
	for _, s := range p.Sections {
		s.Content = append([]string(nil), s.Content...)
		sections = append(sections, s)
	}
	p.Sections = sections
	return p
}

func pageKey(parts ...string) string {
	return strings.Join(parts, "-")
}

// FindModulePage returns the page of the module at setor/estacao/modulo.
func FindModulePage(setor, estacao, modulo string) (ModulePage, error) {
	if p, ok := modulePages[pageKey(setor, estacao, modulo)]; ok {
		return p.clone(), nil
	}
	return ModulePage{}, ErrNotFound
}

// FindContentPage returns the lesson conteudo of the module at setor/estacao/modulo.
func FindContentPage(setor, estacao, modulo, conteudo string) (ContentPage, error) {
	if p, ok := contentPages[pageKey(setor, estacao, modulo, conteudo)]; ok {
		return p.clone(), nil
	}
	return ContentPage{}, ErrNotFound
}

func ModuleKeys() []string {
	keys := make([]string, 0, len(modulePages))
	for k := range modulePages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ContentKeys() []string {
	keys := make([]string, 0, len(contentPages))
	for k := range contentPages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
