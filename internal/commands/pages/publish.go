package pagescmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/commands"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/internal/pages"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

const (
	publishPageMessageType   = "storefront.pages.publish"
	unpublishPageMessageType = "storefront.pages.unpublish"
)

var (
	_ command.Commander[PublishPageCommand]   = (*PublishPageHandler)(nil)
	_ command.Commander[UnpublishPageCommand] = (*UnpublishPageHandler)(nil)
)

// PublishPageCommand requests publication of a page. Publishing an already
// published page is a no-op at the service level.
type PublishPageCommand struct {
	PageID  uuid.UUID `json:"page_id"`
	ActorID uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (PublishPageCommand) Type() string { return publishPageMessageType }

// Validate ensures the command carries the page identifier.
func (m PublishPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("storefront.pages.publish.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishPageHandler publishes pages via the page service using the shared
// command handler foundation.
type PublishPageHandler struct {
	inner *commands.Handler[PublishPageCommand]
}

// NewPublishPageHandler constructs a handler wired to the provided page service.
func NewPublishPageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPageCommand]) *PublishPageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishPageCommand) error {
		_, err := service.PublishPage(ctx, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishPageCommand]{
		commands.WithLogger[PublishPageCommand](baseLogger),
		commands.WithOperation[PublishPageCommand]("pages.publish"),
		commands.WithMessageFields(func(msg PublishPageCommand) map[string]any {
			fields := map[string]any{
				"page_id": msg.PageID,
			}
			if msg.ActorID != uuid.Nil {
				fields["actor_id"] = msg.ActorID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishPageCommand].
func (h *PublishPageHandler) Execute(ctx context.Context, msg PublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UnpublishPageCommand hides a page from the storefront while preserving
// its original published_at timestamp.
type UnpublishPageCommand struct {
	PageID  uuid.UUID `json:"page_id"`
	ActorID uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (UnpublishPageCommand) Type() string { return unpublishPageMessageType }

// Validate ensures the command carries the page identifier.
func (m UnpublishPageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("storefront.pages.unpublish.page_id_required", "page_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnpublishPageHandler reverts pages to draft via the page service.
type UnpublishPageHandler struct {
	inner *commands.Handler[UnpublishPageCommand]
}

// NewUnpublishPageHandler constructs a handler wired to the provided page service.
func NewUnpublishPageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UnpublishPageCommand]) *UnpublishPageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UnpublishPageCommand) error {
		_, err := service.UnpublishPage(ctx, msg.PageID)
		return err
	}

	handlerOpts := []commands.HandlerOption[UnpublishPageCommand]{
		commands.WithLogger[UnpublishPageCommand](baseLogger),
		commands.WithOperation[UnpublishPageCommand]("pages.unpublish"),
		commands.WithMessageFields(func(msg UnpublishPageCommand) map[string]any {
			fields := map[string]any{
				"page_id": msg.PageID,
			}
			if msg.ActorID != uuid.Nil {
				fields["actor_id"] = msg.ActorID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UnpublishPageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UnpublishPageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UnpublishPageCommand].
func (h *UnpublishPageHandler) Execute(ctx context.Context, msg UnpublishPageCommand) error {
	return h.inner.Execute(ctx, msg)
}
