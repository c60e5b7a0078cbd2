package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/amara-beauty/storefront-cms/blog"
	"github.com/amara-beauty/storefront-cms/catalog"
	"github.com/amara-beauty/storefront-cms/internal/validation"
	"github.com/amara-beauty/storefront-cms/locales"
	"github.com/amara-beauty/storefront-cms/media"
	"github.com/amara-beauty/storefront-cms/navigation"
	"github.com/amara-beauty/storefront-cms/pages"
	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
	"github.com/amara-beauty/storefront-cms/settings"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: message})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, interfaces.ErrUnauthorized) {
		return http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: err.Error(),
		}
	}

	if catalog.IsNotFound(err) || blog.IsNotFound(err) || pages.IsNotFound(err) ||
		navigation.IsNotFound(err) || settings.IsNotFound(err) || media.IsNotFound(err) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, media.ErrStorageUnavailable) {
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_failed",
			Message: err.Error(),
		}
	}

	if errors.Is(err, catalog.ErrSlugExists) ||
		errors.Is(err, catalog.ErrCategoryParentCycle) ||
		errors.Is(err, blog.ErrSlugExists) ||
		errors.Is(err, pages.ErrSlugExists) ||
		errors.Is(err, navigation.ErrParentCycle) ||
		errors.Is(err, navigation.ErrReorderIncomplete) ||
		errors.Is(err, media.ErrFolderNotEmpty) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSectionValidation) ||
		errors.Is(err, pages.ErrSectionConfig) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if isBadInput(err) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func isBadInput(err error) bool {
	for _, sentinel := range []error{
		locales.ErrLocaleRequired,
		locales.ErrUnknownLocale,
		catalog.ErrProductIDRequired,
		catalog.ErrProductNameRequired,
		catalog.ErrSlugInvalid,
		catalog.ErrPriceInvalid,
		catalog.ErrDuplicateLocale,
		catalog.ErrUnknownLocale,
		catalog.ErrCategoryIDRequired,
		catalog.ErrCategorySlugRequired,
		catalog.ErrLinkURLRequired,
		blog.ErrPostIDRequired,
		blog.ErrTitleRequired,
		blog.ErrSlugInvalid,
		blog.ErrDuplicateLocale,
		blog.ErrUnknownLocale,
		blog.ErrBodyFormatUnknown,
		pages.ErrPageIDRequired,
		pages.ErrSlugRequired,
		pages.ErrSlugInvalid,
		pages.ErrTitleRequired,
		pages.ErrUnknownLocale,
		pages.ErrSectionTypeInvalid,
		pages.ErrPositionInvalid,
		navigation.ErrItemIDRequired,
		navigation.ErrLabelRequired,
		navigation.ErrGroupRequired,
		navigation.ErrUnknownLocale,
		navigation.ErrParentInvalid,
		navigation.ErrPositionInvalid,
		settings.ErrKeyRequired,
		settings.ErrValueRequired,
		media.ErrAssetIDRequired,
		media.ErrFilenameRequired,
		media.ErrEmptyUpload,
		media.ErrFolderNameRequired,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	return uuid.Parse(trimmed)
}

func parseBoolQuery(value string) *bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseIntQuery(value string, defaultValue int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}
