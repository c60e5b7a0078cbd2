package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/amara-beauty/storefront-cms/blog"
)

// BunPostRepository implements PostRepository over bun. Aggregate writes
// (post + translations + media) run inside a single transaction.
type BunPostRepository struct {
	db *bun.DB
}

// NewBunPostRepository creates a post repository backed by bun.
func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return &BunPostRepository{db: db}
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	record := new(Post)
	err := r.db.NewSelect().
		Model(record).
		Relation("Translations").
		Relation("Media").
		Where("bp.id = ?", id).
		Where("bp.deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &blog.NotFoundError{Resource: "post", Key: id.String()}
		}
		return nil, fmt.Errorf("blog repository error: %w", err)
	}
	return record, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*Post, error) {
	translation := new(PostTranslation)
	err := r.db.NewSelect().
		Model(translation).
		Column("bpt.post_id").
		Where("bpt.slug = ?", slug).
		Where("bpt.locale_id = ?", localeID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &blog.NotFoundError{Resource: "post", Key: slug}
		}
		return nil, fmt.Errorf("blog repository error: %w", err)
	}
	return r.GetByID(ctx, translation.PostID)
}

func (r *BunPostRepository) List(ctx context.Context, filters PostFilters) ([]*Post, error) {
	var records []*Post
	query := r.db.NewSelect().
		Model(&records).
		Relation("Translations").
		Relation("Media").
		Where("bp.deleted_at IS NULL").
		OrderExpr("bp.published_at DESC NULLS LAST").
		OrderExpr("bp.created_at DESC")

	if filters.Status != "" {
		query = query.Where("bp.status = ?", string(filters.Status))
	}
	if !filters.VisibleAt.IsZero() {
		query = query.Where("bp.published_at IS NOT NULL").
			Where("bp.published_at <= ?", filters.VisibleAt)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("blog repository error: %w", err)
	}
	return records, nil
}

func (r *BunPostRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(post).Exec(ctx); err != nil {
			return err
		}
		return insertPostChildren(ctx, tx, post)
	})
	if err != nil {
		return nil, fmt.Errorf("blog repository error: %w", err)
	}
	return r.GetByID(ctx, post.ID)
}

func (r *BunPostRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(post).WherePK().Exec(ctx); err != nil {
			return err
		}
		if err := deletePostChildren(ctx, tx, post.ID); err != nil {
			return err
		}
		return insertPostChildren(ctx, tx, post)
	})
	if err != nil {
		return nil, fmt.Errorf("blog repository error: %w", err)
	}
	return r.GetByID(ctx, post.ID)
}

func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := deletePostChildren(ctx, tx, id); err != nil {
			return err
		}
		result, err := tx.NewDelete().Model((*Post)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return &blog.NotFoundError{Resource: "post", Key: id.String()}
		}
		return nil
	})
	if err != nil {
		if blog.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("blog repository error: %w", err)
	}
	return nil
}

func insertPostChildren(ctx context.Context, tx bun.Tx, post *Post) error {
	if len(post.Translations) > 0 {
		if _, err := tx.NewInsert().Model(&post.Translations).Exec(ctx); err != nil {
			return err
		}
	}
	if len(post.Media) > 0 {
		if _, err := tx.NewInsert().Model(&post.Media).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func deletePostChildren(ctx context.Context, tx bun.Tx, postID uuid.UUID) error {
	if _, err := tx.NewDelete().Model((*PostTranslation)(nil)).Where("post_id = ?", postID).Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*PostMedia)(nil)).Where("post_id = ?", postID).Exec(ctx); err != nil {
		return err
	}
	return nil
}
