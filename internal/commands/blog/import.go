package blogcmd

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/blog"
	"github.com/amara-beauty/storefront-cms/internal/commands"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

const importDirectoryMessageType = "storefront.blog.import_directory"

// ErrImportDisabled is returned when the markdown import feature flag is off.
var ErrImportDisabled = errors.New("blog command: markdown import disabled")

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// FeatureGates exposes the runtime toggles the blog command handlers honour.
// Callers supply closures reading from the runtime config so handlers stay
// decoupled from configuration.
type FeatureGates struct {
	MarkdownImportEnabled func() bool
}

func (g FeatureGates) importEnabled() bool {
	if g.MarkdownImportEnabled == nil {
		return true
	}
	return g.MarkdownImportEnabled()
}

// ImportDirectoryCommand triggers a filesystem walk for markdown documents
// under Directory and loads them into blog posts.
type ImportDirectoryCommand struct {
	// Directory selects the filesystem path to load markdown files from.
	Directory string `json:"directory"`
	// AuthorID is recorded on created and updated posts.
	AuthorID uuid.UUID `json:"author_id,omitempty"`
	// UpdateExisting overwrites posts previously imported from the same slug.
	UpdateExisting bool `json:"update_existing,omitempty"`
	// DryRun previews the run without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("storefront.blog.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ImportDirectoryHandler runs markdown imports via the shared command
// handler foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler creates a handler bound to the supplied importer.
func NewImportDirectoryHandler(importer *blog.Importer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.importEnabled() {
			return ErrImportDisabled
		}

		result, err := importer.ImportDirectory(ctx, msg.Directory, blog.ImportOptions{
			AuthorID:       msg.AuthorID,
			UpdateExisting: msg.UpdateExisting,
			DryRun:         msg.DryRun,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"created_count": len(result.CreatedIDs),
			"updated_count": len(result.UpdatedIDs),
			"skipped_count": len(result.Skipped),
			"error_count":   len(result.Errors),
			"dry_run":       msg.DryRun,
		}).Info("blog.command.import_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand]("blog.import_directory"),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.AuthorID != uuid.Nil {
				fields["author_id"] = msg.AuthorID
			}
			if msg.UpdateExisting {
				fields["update_existing"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
