package di

import (
	"context"
	"fmt"
	"io"

	"github.com/amara-beauty/storefront-cms/pkg/interfaces"
)

// noopStorage stands in when the media library feature is disabled. Every
// operation fails loudly so a misconfigured deployment surfaces immediately.
type noopStorage struct{}

func (noopStorage) Upload(context.Context, string, string, io.Reader) (*interfaces.StoredObject, error) {
	return nil, fmt.Errorf("storage: media library is disabled")
}

func (noopStorage) Delete(context.Context, string) error {
	return fmt.Errorf("storage: media library is disabled")
}

func (noopStorage) PublicURL(path string) string {
	return path
}
