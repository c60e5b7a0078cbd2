package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunProductRepository implements ProductRepository over bun. Aggregate
// writes (product + translations + media + links) run inside a single
// transaction so a partial failure never leaves a half-written product.
type BunProductRepository struct {
	db *bun.DB
}

// NewBunProductRepository creates a product repository backed by bun.
func NewBunProductRepository(db *bun.DB) *BunProductRepository {
	return &BunProductRepository{db: db}
}

func (r *BunProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record := new(Product)
	err := r.db.NewSelect().
		Model(record).
		Relation("Translations").
		Relation("Media").
		Relation("Links").
		Relation("Category").
		Relation("Category.Translations").
		Where("p.id = ?", id).
		Where("p.deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "product", Key: id.String()}
		}
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return record, nil
}

func (r *BunProductRepository) GetBySlug(ctx context.Context, localeID uuid.UUID, slug string) (*Product, error) {
	translation := new(ProductTranslation)
	err := r.db.NewSelect().
		Model(translation).
		Column("pt.product_id").
		Where("pt.slug = ?", slug).
		Where("pt.locale_id = ?", localeID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "product", Key: slug}
		}
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return r.GetByID(ctx, translation.ProductID)
}

func (r *BunProductRepository) List(ctx context.Context, filters ProductFilters) ([]*Product, error) {
	var records []*Product
	query := r.db.NewSelect().
		Model(&records).
		Relation("Translations").
		Relation("Media").
		Relation("Links").
		Relation("Category").
		Relation("Category.Translations").
		Where("p.deleted_at IS NULL").
		OrderExpr("p.sort_order ASC").
		OrderExpr("p.created_at DESC")

	if filters.Status != "" {
		query = query.Where("p.status = ?", string(filters.Status))
	}
	if filters.CategoryID != nil {
		query = query.Where("p.category_id = ?", *filters.CategoryID)
	}
	if filters.Featured != nil {
		query = query.Where("p.is_featured = ?", *filters.Featured)
	}
	if filters.BestSeller != nil {
		query = query.Where("p.is_best_seller = ?", *filters.BestSeller)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return records, nil
}

func (r *BunProductRepository) Create(ctx context.Context, product *Product) (*Product, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Exec(ctx); err != nil {
			return err
		}
		return insertProductChildren(ctx, tx, product)
	})
	if err != nil {
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return r.GetByID(ctx, product.ID)
}

func (r *BunProductRepository) Update(ctx context.Context, product *Product) (*Product, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(product).WherePK().Exec(ctx); err != nil {
			return err
		}
		if err := deleteProductChildren(ctx, tx, product.ID); err != nil {
			return err
		}
		return insertProductChildren(ctx, tx, product)
	})
	if err != nil {
		return nil, fmt.Errorf("product repository error: %w", err)
	}
	return r.GetByID(ctx, product.ID)
}

func (r *BunProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := deleteProductChildren(ctx, tx, id); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*Product)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("product repository error: %w", err)
	}
	return nil
}

func insertProductChildren(ctx context.Context, tx bun.Tx, product *Product) error {
	for _, tr := range product.Translations {
		tr.ProductID = product.ID
		if _, err := tx.NewInsert().Model(tr).Exec(ctx); err != nil {
			return err
		}
	}
	for _, m := range product.Media {
		m.ProductID = product.ID
		if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
			return err
		}
	}
	for _, link := range product.Links {
		link.ProductID = product.ID
		if _, err := tx.NewInsert().Model(link).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func deleteProductChildren(ctx context.Context, tx bun.Tx, productID uuid.UUID) error {
	if _, err := tx.NewDelete().Model((*ProductTranslation)(nil)).Where("product_id = ?", productID).Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*ProductMedia)(nil)).Where("product_id = ?", productID).Exec(ctx); err != nil {
		return err
	}
	if _, err := tx.NewDelete().Model((*ProductLink)(nil)).Where("product_id = ?", productID).Exec(ctx); err != nil {
		return err
	}
	return nil
}

// BunCategoryRepository implements CategoryRepository over bun.
type BunCategoryRepository struct {
	db *bun.DB
}

// NewBunCategoryRepository creates a category repository backed by bun.
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return &BunCategoryRepository{db: db}
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	record := new(Category)
	err := r.db.NewSelect().
		Model(record).
		Relation("Translations").
		Relation("Children").
		Relation("Children.Translations").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "category", Key: id.String()}
		}
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return record, nil
}

func (r *BunCategoryRepository) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	record := new(Category)
	err := r.db.NewSelect().
		Model(record).
		Relation("Translations").
		Relation("Children").
		Relation("Children.Translations").
		Where("c.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "category", Key: slug}
		}
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return record, nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	var records []*Category
	err := r.db.NewSelect().
		Model(&records).
		Relation("Translations").
		Where("c.is_enabled = ?", true).
		OrderExpr("c.sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return records, nil
}

func (r *BunCategoryRepository) ListRoots(ctx context.Context) ([]*Category, error) {
	var records []*Category
	err := r.db.NewSelect().
		Model(&records).
		Relation("Translations").
		Where("c.parent_id IS NULL").
		Where("c.is_enabled = ?", true).
		OrderExpr("c.sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return records, nil
}

func (r *BunCategoryRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Category, error) {
	var records []*Category
	err := r.db.NewSelect().
		Model(&records).
		Relation("Translations").
		Where("c.parent_id = ?", parentID).
		Where("c.is_enabled = ?", true).
		OrderExpr("c.sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return records, nil
}

func (r *BunCategoryRepository) Create(ctx context.Context, category *Category) (*Category, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(category).Exec(ctx); err != nil {
			return err
		}
		for _, tr := range category.Translations {
			tr.CategoryID = category.ID
			if _, err := tx.NewInsert().Model(tr).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return r.GetByID(ctx, category.ID)
}

func (r *BunCategoryRepository) Update(ctx context.Context, category *Category) (*Category, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(category).WherePK().Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*CategoryTranslation)(nil)).Where("category_id = ?", category.ID).Exec(ctx); err != nil {
			return err
		}
		for _, tr := range category.Translations {
			tr.CategoryID = category.ID
			if _, err := tx.NewInsert().Model(tr).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("category repository error: %w", err)
	}
	return r.GetByID(ctx, category.ID)
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*CategoryTranslation)(nil)).Where("category_id = ?", id).Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().Model((*Category)(nil)).Where("id = ?", id).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("category repository error: %w", err)
	}
	return nil
}
