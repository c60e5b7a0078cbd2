package blog

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/blog"
	"github.com/amara-beauty/storefront-cms/internal/domain"
	"github.com/amara-beauty/storefront-cms/internal/identity"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/locales"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// documentMeta is the frontmatter block of one markdown source file.
type documentMeta struct {
	Title          string     `yaml:"title"`
	Slug           string     `yaml:"slug"`
	Locale         string     `yaml:"locale"`
	Excerpt        string     `yaml:"excerpt"`
	Date           *time.Time `yaml:"date"`
	Status         string     `yaml:"status"`
	Cover          string     `yaml:"cover"`
	CoverAlt       string     `yaml:"cover_alt"`
	SEOTitle       string     `yaml:"seo_title"`
	SEODescription string     `yaml:"seo_description"`
}

// ImportOptions tunes one import run.
type ImportOptions struct {
	// AuthorID is recorded as creator and updater on imported posts.
	AuthorID uuid.UUID
	// UpdateExisting overwrites posts previously imported from the same slug.
	UpdateExisting bool
	// DryRun parses and groups documents without persisting anything.
	DryRun bool
}

// ImportResult summarises one import run.
type ImportResult struct {
	CreatedIDs []uuid.UUID
	UpdatedIDs []uuid.UUID
	Skipped    []string
	Errors     []string
}

// ImporterOption customises the importer.
type ImporterOption func(*Importer)

// WithImporterLogger injects the importer logger.
func WithImporterLogger(logger interfaces.Logger) ImporterOption {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Importer loads markdown documents with frontmatter into blog posts. Files
// sharing a slug merge into one post with one translation per locale; the
// post id derives from the slug so repeated runs address the same rows.
type Importer struct {
	service Service
	posts   PostRepository
	logger  interfaces.Logger
}

// NewImporter constructs a markdown importer over the blog service.
func NewImporter(service Service, posts PostRepository, opts ...ImporterOption) *Importer {
	i := &Importer{
		service: service,
		posts:   posts,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportDirectory walks dir for .md files and imports them.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("blog import: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("blog import: %s is not a directory", dir)
	}
	return i.ImportFS(ctx, os.DirFS(dir), opts)
}

// ImportFS imports every markdown document reachable in fsys.
func (i *Importer) ImportFS(ctx context.Context, fsys fs.FS, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	groups, err := i.collectDocuments(fsys, result)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		i.importGroup(ctx, slug, groups[slug], opts, result)
	}

	i.logger.Info("blog.import.completed",
		"created", len(result.CreatedIDs),
		"updated", len(result.UpdatedIDs),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors),
		"dry_run", opts.DryRun,
	)
	return result, nil
}

type document struct {
	path string
	meta documentMeta
	body []byte
}

func (i *Importer) collectDocuments(fsys fs.FS, result *ImportResult) (map[string][]document, error) {
	groups := make(map[string][]document)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".md") {
			return nil
		}

		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			return nil
		}

		var meta documentMeta
		body, err := frontmatter.Parse(bytes.NewReader(raw), &meta)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: frontmatter: %v", path, err))
			return nil
		}
		if strings.TrimSpace(meta.Title) == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: title is required", path))
			return nil
		}

		slug := strings.TrimSpace(meta.Slug)
		if slug == "" {
			slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		slug = strings.ToLower(slug)

		groups[slug] = append(groups[slug], document{path: path, meta: meta, body: body})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("blog import: walk: %w", err)
	}
	return groups, nil
}

func (i *Importer) importGroup(ctx context.Context, slug string, docs []document, opts ImportOptions, result *ImportResult) {
	translations := make([]TranslationInput, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	var publishedAt *time.Time
	status := string(domain.StatusDraft)

	for _, doc := range docs {
		locale := locales.Default
		if strings.TrimSpace(doc.meta.Locale) != "" {
			validated, err := locales.Validate(doc.meta.Locale)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown locale %q", doc.path, doc.meta.Locale))
				continue
			}
			locale = validated
		}
		if seen[locale] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: duplicate locale %q for slug %q", doc.path, locale, slug))
			continue
		}
		seen[locale] = true

		slugCopy := slug
		input := TranslationInput{
			Locale:     locale,
			Title:      doc.meta.Title,
			Slug:       &slugCopy,
			Body:       string(doc.body),
			BodyFormat: BodyFormatMarkdown,
		}
		if excerpt := strings.TrimSpace(doc.meta.Excerpt); excerpt != "" {
			input.Excerpt = &excerpt
		}
		if seoTitle := strings.TrimSpace(doc.meta.SEOTitle); seoTitle != "" {
			input.SEOTitle = &seoTitle
		}
		if seoDesc := strings.TrimSpace(doc.meta.SEODescription); seoDesc != "" {
			input.SEODescription = &seoDesc
		}
		translations = append(translations, input)

		if doc.meta.Date != nil && (publishedAt == nil || doc.meta.Date.Before(*publishedAt)) {
			publishedAt = doc.meta.Date
		}
		if strings.TrimSpace(doc.meta.Status) != "" {
			status = string(domain.NormalizeStatus(doc.meta.Status))
		}
	}

	if len(translations) == 0 {
		result.Skipped = append(result.Skipped, slug)
		return
	}
	if publishedAt != nil && status == string(domain.StatusDraft) {
		status = string(domain.StatusPublished)
	}

	var media []MediaInput
	if cover := strings.TrimSpace(docs[0].meta.Cover); cover != "" {
		input := MediaInput{URL: cover, IsFeatured: true}
		if alt := strings.TrimSpace(docs[0].meta.CoverAlt); alt != "" {
			input.Alt = &alt
		}
		media = append(media, input)
	}

	postID := identity.ImportedPostUUID(slug)
	_, err := i.posts.GetByID(ctx, postID)
	exists := err == nil
	if err != nil && !blog.IsNotFound(err) {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: lookup: %v", slug, err))
		return
	}

	if exists && !opts.UpdateExisting {
		result.Skipped = append(result.Skipped, slug)
		return
	}
	if opts.DryRun {
		if exists {
			result.UpdatedIDs = append(result.UpdatedIDs, postID)
		} else {
			result.CreatedIDs = append(result.CreatedIDs, postID)
		}
		return
	}

	if exists {
		_, err = i.service.UpdatePost(ctx, UpdatePostInput{
			ID:           postID,
			Status:       status,
			PublishedAt:  publishedAt,
			UpdatedBy:    opts.AuthorID,
			Translations: translations,
			Media:        media,
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: update: %v", slug, err))
			return
		}
		result.UpdatedIDs = append(result.UpdatedIDs, postID)
		return
	}

	_, err = i.service.CreatePost(ctx, CreatePostInput{
		ID:           &postID,
		Status:       status,
		PublishedAt:  publishedAt,
		CreatedBy:    opts.AuthorID,
		UpdatedBy:    opts.AuthorID,
		Translations: translations,
		Media:        media,
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: create: %v", slug, err))
		return
	}
	result.CreatedIDs = append(result.CreatedIDs, postID)
}
