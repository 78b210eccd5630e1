package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/centavo-app/centavo/internal/model"
)

// ListVisibleCategories returns the category set visible to a user for one
// type: the union of system defaults and the user's own categories,
// ordered by name. An empty result is valid and distinct from a storage
// failure.
func (s *SQLiteStorage) ListVisibleCategories(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, type, icon, owner_id
		FROM categories
		WHERE type = ? AND (owner_id = ? OR owner_id IS NULL)
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, string(categoryType), userID)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, storageErr("list categories", scanErr)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list categories", err)
	}

	slog.Debug("listed visible categories",
		"user", userID, "type", categoryType, "count", len(categories))
	return categories, nil
}

// ResolveCategoryID maps a user-facing category name to its id, resolving
// only against the same visible set as ListVisibleCategories. Another
// user's private category can never resolve. A miss is ErrNotFound.
func (s *SQLiteStorage) ResolveCategoryID(ctx context.Context, userID int64, categoryType model.CategoryType, name string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}

	// A user-owned category shadows a same-named default.
	query := `
		SELECT id
		FROM categories
		WHERE type = ? AND name = ? AND (owner_id = ? OR owner_id IS NULL)
		ORDER BY owner_id IS NULL
		LIMIT 1`

	var id int64
	err := s.db.QueryRowContext(ctx, query, string(categoryType), name, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, storageErr("resolve category", err)
	}

	return id, nil
}

// CreateCategory creates a category owned by the given user. A name the
// user already uses fails with ErrDuplicateName.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, userID int64, name string, categoryType model.CategoryType, icon string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, type, icon, owner_id)
		VALUES (?, ?, ?, ?)`,
		name, string(categoryType), icon, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q", ErrDuplicateName, name)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, storageErr("create category", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("create category", err)
	}

	owner := userID
	category := &model.Category{
		ID:      id,
		Name:    name,
		Type:    categoryType,
		Icon:    icon,
		OwnerID: &owner,
	}

	slog.Info("created category", "name", name, "id", id, "user", userID)
	return category, nil
}

// DeleteCategory removes a category; its subcategories cascade away with
// it. The delete is blocked by the engine while transactions or recurring
// rules still reference the category.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: delete category: still referenced", ErrStorage)
		}
		return storageErr("delete category", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr("delete category", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.Info("deleted category", "id", id)
	return nil
}

// CreateSubcategory creates a user-owned subcategory under a category the
// user can see.
func (s *SQLiteStorage) CreateSubcategory(ctx context.Context, userID, categoryID int64, name string) (*model.Subcategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	if err := s.checkCategoryVisible(ctx, userID, categoryID); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO subcategories (name, category_id, owner_id)
		VALUES (?, ?, ?)`,
		name, categoryID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: subcategory %q", ErrDuplicateName, name)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return nil, storageErr("create subcategory", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storageErr("create subcategory", err)
	}

	owner := userID
	sub := &model.Subcategory{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		OwnerID:    &owner,
	}

	slog.Info("created subcategory", "name", name, "id", id, "category", categoryID)
	return sub, nil
}

// ListSubcategories returns the subcategories visible to a user under one
// category, ordered by name.
func (s *SQLiteStorage) ListSubcategories(ctx context.Context, userID, categoryID int64) ([]model.Subcategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category_id, owner_id
		FROM subcategories
		WHERE category_id = ? AND (owner_id = ? OR owner_id IS NULL)
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, categoryID, userID)
	if err != nil {
		return nil, storageErr("list subcategories", err)
	}
	defer func() { _ = rows.Close() }()

	var subs []model.Subcategory
	for rows.Next() {
		var sub model.Subcategory
		var owner sql.NullInt64
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID, &owner); err != nil {
			return nil, storageErr("list subcategories", err)
		}
		if owner.Valid {
			sub.OwnerID = &owner.Int64
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list subcategories", err)
	}

	return subs, nil
}

// ResolveSubcategoryID maps a subcategory name to its id within one
// visible category. A miss is ErrNotFound.
func (s *SQLiteStorage) ResolveSubcategoryID(ctx context.Context, userID, categoryID int64, name string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if err := validateString(name, "name"); err != nil {
		return 0, err
	}

	query := `
		SELECT id
		FROM subcategories
		WHERE category_id = ? AND name = ? AND (owner_id = ? OR owner_id IS NULL)
		ORDER BY owner_id IS NULL
		LIMIT 1`

	var id int64
	err := s.db.QueryRowContext(ctx, query, categoryID, name, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, storageErr("resolve subcategory", err)
	}

	return id, nil
}

// checkCategoryVisible confirms the category exists and is either a
// default or owned by the user.
func (s *SQLiteStorage) checkCategoryVisible(ctx context.Context, userID, categoryID int64) error {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM categories
		WHERE id = ? AND (owner_id = ? OR owner_id IS NULL)`,
		categoryID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
	}
	if err != nil {
		return storageErr("check category", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (model.Category, error) {
	var cat model.Category
	var icon sql.NullString
	var owner sql.NullInt64
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Type, &icon, &owner); err != nil {
		return model.Category{}, err
	}
	cat.Icon = icon.String
	if owner.Valid {
		cat.OwnerID = &owner.Int64
	}
	return cat, nil
}
