package pages

import (
	"context"
	"sync"

	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/pages"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// Renderer turns one decoded section into rendered output.
type Renderer func(ctx context.Context, section SectionView) (string, error)

// RenderedSection pairs a section with its renderer output.
type RenderedSection struct {
	Section SectionView
	Output  string
}

// RendererRegistry dispatches sections to their registered renderer. A
// section whose type has no renderer, or whose renderer fails, is skipped
// with a warning; one bad section never takes down the page.
type RendererRegistry struct {
	mu        sync.RWMutex
	renderers map[pages.SectionType]Renderer
	logger    interfaces.Logger
}

// NewRendererRegistry creates an empty registry.
func NewRendererRegistry(logger interfaces.Logger) *RendererRegistry {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &RendererRegistry{
		renderers: map[pages.SectionType]Renderer{},
		logger:    logger,
	}
}

// Register binds a renderer to a section type, replacing any previous one.
func (r *RendererRegistry) Register(sectionType pages.SectionType, renderer Renderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[sectionType] = renderer
}

// Lookup returns the renderer bound to sectionType.
func (r *RendererRegistry) Lookup(sectionType pages.SectionType) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[sectionType]
	return renderer, ok
}

// RenderPage walks the page's ordered sections and renders each through its
// registered renderer.
func (r *RendererRegistry) RenderPage(ctx context.Context, content *PageContent) []RenderedSection {
	if content == nil {
		return nil
	}
	rendered := make([]RenderedSection, 0, len(content.Sections))
	for _, section := range content.Sections {
		renderer, ok := r.Lookup(section.Type)
		if !ok {
			r.logger.Warn("pages.render.no_renderer",
				"section_type", string(section.Type), "section_id", section.ID, "page", content.Slug)
			continue
		}
		output, err := renderer(ctx, section)
		if err != nil {
			r.logger.Warn("pages.render.renderer_failed",
				"section_type", string(section.Type), "section_id", section.ID, "error", err)
			continue
		}
		rendered = append(rendered, RenderedSection{Section: section, Output: output})
	}
	return rendered
}
