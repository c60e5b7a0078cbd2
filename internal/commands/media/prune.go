package mediacmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/internal/commands"
	"github.com/amara-beauty/storefront-cms/internal/logging"
	"github.com/amara-beauty/storefront-cms/internal/media"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

const (
	deleteAssetMessageType = "storefront.media.delete_asset"
	pruneFolderMessageType = "storefront.media.prune_folder"
)

var (
	_ command.Commander[DeleteAssetCommand] = (*DeleteAssetHandler)(nil)
	_ command.Commander[PruneFolderCommand] = (*PruneFolderHandler)(nil)
)

// DeleteAssetCommand removes one asset: CDN object first, metadata second.
type DeleteAssetCommand struct {
	AssetID uuid.UUID `json:"asset_id"`
	ActorID uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (DeleteAssetCommand) Type() string { return deleteAssetMessageType }

// Validate ensures the command carries the asset identifier.
func (m DeleteAssetCommand) Validate() error {
	errs := validation.Errors{}
	if m.AssetID == uuid.Nil {
		errs["asset_id"] = validation.NewError("storefront.media.delete_asset.asset_id_required", "asset_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteAssetHandler deletes assets via the media service.
type DeleteAssetHandler struct {
	inner *commands.Handler[DeleteAssetCommand]
}

// NewDeleteAssetHandler constructs a handler wired to the media service.
func NewDeleteAssetHandler(service media.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteAssetCommand]) *DeleteAssetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteAssetCommand) error {
		return service.DeleteAsset(ctx, msg.AssetID)
	}

	handlerOpts := []commands.HandlerOption[DeleteAssetCommand]{
		commands.WithLogger[DeleteAssetCommand](baseLogger),
		commands.WithOperation[DeleteAssetCommand]("media.delete_asset"),
		commands.WithMessageFields(func(msg DeleteAssetCommand) map[string]any {
			fields := map[string]any{
				"asset_id": msg.AssetID,
			}
			if msg.ActorID != uuid.Nil {
				fields["actor_id"] = msg.ActorID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteAssetCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteAssetHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteAssetCommand].
func (h *DeleteAssetHandler) Execute(ctx context.Context, msg DeleteAssetCommand) error {
	return h.inner.Execute(ctx, msg)
}

// PruneFolderCommand deletes every asset inside a folder and then the
// folder itself. Assets failing their CDN delete stop the run so nothing
// is orphaned.
type PruneFolderCommand struct {
	FolderID uuid.UUID `json:"folder_id"`
	ActorID  uuid.UUID `json:"actor_id,omitempty"`
}

// Type implements command.Message.
func (PruneFolderCommand) Type() string { return pruneFolderMessageType }

// Validate ensures the command carries the folder identifier.
func (m PruneFolderCommand) Validate() error {
	errs := validation.Errors{}
	if m.FolderID == uuid.Nil {
		errs["folder_id"] = validation.NewError("storefront.media.prune_folder.folder_id_required", "folder_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PruneFolderHandler empties and removes folders via the media service.
type PruneFolderHandler struct {
	inner *commands.Handler[PruneFolderCommand]
}

// NewPruneFolderHandler constructs a handler wired to the media service.
func NewPruneFolderHandler(service media.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PruneFolderCommand]) *PruneFolderHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PruneFolderCommand) error {
		folderID := msg.FolderID
		assets, err := service.ListAssets(ctx, media.AssetFilters{FolderID: &folderID})
		if err != nil {
			return err
		}
		for _, asset := range assets {
			if err := service.DeleteAsset(ctx, asset.ID); err != nil {
				return err
			}
		}
		return service.DeleteFolder(ctx, folderID)
	}

	handlerOpts := []commands.HandlerOption[PruneFolderCommand]{
		commands.WithLogger[PruneFolderCommand](baseLogger),
		commands.WithOperation[PruneFolderCommand]("media.prune_folder"),
		commands.WithMessageFields(func(msg PruneFolderCommand) map[string]any {
			fields := map[string]any{
				"folder_id": msg.FolderID,
			}
			if msg.ActorID != uuid.Nil {
				fields["actor_id"] = msg.ActorID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PruneFolderCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PruneFolderHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PruneFolderCommand].
func (h *PruneFolderHandler) Execute(ctx context.Context, msg PruneFolderCommand) error {
	return h.inner.Execute(ctx, msg)
}
