package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

const categoryColumns = `id, user_id, name, type, color, icon, parent_id, created_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	category := &models.Category{}
	err := row.Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Color,
		&category.Icon,
		&category.ParentID,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// categoryNameTaken проверяет уникальность имени в пределах одного пользователя,
// excludeID исключает саму запись при обновлении
func categoryNameTaken(pool *pgxpool.Pool, userID int, name string, excludeID int) (bool, error) {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE user_id = $1 AND name = $2 AND id <> $3)`,
		userID, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки имени категории: %v", err)
	}
	return exists, nil
}

// validateParent требует, чтобы родитель существовал и принадлежал тому же пользователю
func validateParent(pool *pgxpool.Pool, userID, parentID int) error {
	var ownerID int
	err := pool.QueryRow(context.Background(),
		`SELECT user_id FROM categories WHERE id = $1`, parentID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidParent
		}
		return fmt.Errorf("ошибка проверки родительской категории: %v", err)
	}
	if ownerID != userID {
		return ErrInvalidParent
	}
	return nil
}

// CreateCategory добавляет категорию; category.UserID заполняется сервером
// из текущего пользователя
func CreateCategory(pool *pgxpool.Pool, category *models.Category) error {
	taken, err := categoryNameTaken(pool, category.UserID, category.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateName
	}

	if category.ParentID != nil {
		if err := validateParent(pool, category.UserID, *category.ParentID); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO categories (user_id, name, type, color, icon, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = pool.QueryRow(context.Background(), query,
		category.UserID,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.ParentID).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении категории: %v", err)
	}
	return nil
}

func GetCategoryByID(pool *pgxpool.Pool, categoryID int) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(pool.QueryRow(context.Background(), query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении категории: %v", err)
	}
	return category, nil
}

// GetCategoryForUser возвращает категорию с проверкой владельца.
// Несуществующий id дает ErrNotFound до проверки владельца
func GetCategoryForUser(pool *pgxpool.Pool, userID, categoryID int) (*models.Category, error) {
	category, err := GetCategoryByID(pool, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, ErrForbidden
	}
	return category, nil
}

func categoryHasChildren(pool *pgxpool.Pool, categoryID int) (bool, error) {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE parent_id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки дочерних категорий: %v", err)
	}
	return exists, nil
}

func UpdateCategory(pool *pgxpool.Pool, userID, categoryID int, upd *models.CategoryUpdate) (*models.Category, error) {
	category, err := GetCategoryForUser(pool, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		taken, err := categoryNameTaken(pool, userID, *upd.Name, categoryID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateName
		}
		category.Name = *upd.Name
	}
	if upd.Type != nil {
		category.Type = *upd.Type
	}
	if upd.Color != nil {
		category.Color = upd.Color
	}
	if upd.Icon != nil {
		category.Icon = upd.Icon
	}

	if upd.ParentID != nil {
		if *upd.ParentID == categoryID {
			return nil, ErrSelfParent
		}
		// Узел с детьми закреплен как корневой, иначе вложенность
		// стала бы трехуровневой
		hasChildren, err := categoryHasChildren(pool, categoryID)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, ErrParentHasChildren
		}
		if err := validateParent(pool, userID, *upd.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = upd.ParentID
	}

	query := `
		UPDATE categories
		SET name = $1, type = $2, color = $3, icon = $4, parent_id = $5
		WHERE id = $6`

	_, err = pool.Exec(context.Background(), query,
		category.Name, category.Type, category.Color, category.Icon, category.ParentID, category.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления категории: %v", err)
	}
	return category, nil
}

// DeleteCategory удаляет категорию вместе со всеми прямыми детьми
// в одной транзакции
func DeleteCategory(pool *pgxpool.Pool, userID, categoryID int) error {
	if _, err := GetCategoryForUser(pool, userID, categoryID); err != nil {
		return err
	}

	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE parent_id = $1`, categoryID); err != nil {
		return fmt.Errorf("ошибка при удалении дочерних категорий: %v", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return nil
}

// GetRootCategories возвращает корневые категории пользователя с вложенными
// прямыми детьми, глубина ровно один уровень
func GetRootCategories(pool *pgxpool.Pool, userID int) ([]models.Category, error) {
	rows, err := pool.Query(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND parent_id IS NULL ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %v", err)
	}
	defer rows.Close()

	roots := []models.Category{}
	index := map[int]int{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		index[category.ID] = len(roots)
		roots = append(roots, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	childRows, err := pool.Query(context.Background(),
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 AND parent_id IS NOT NULL ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении дочерних категорий: %v", err)
	}
	defer childRows.Close()

	for childRows.Next() {
		child, err := scanCategory(childRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[*child.ParentID]; ok {
			roots[i].Children = append(roots[i].Children, *child)
		}
	}
	return roots, childRows.Err()
}
