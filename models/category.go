package models

import "time"

type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

func (t CategoryType) Valid() bool {
	return t == CategoryIncome || t == CategoryExpense
}

// Category — категория пользователя; иерархия строго двухуровневая:
// корневые категории и их прямые дети
type Category struct {
	ID        int          `json:"id" db:"id"`
	UserID    int          `json:"user_id" db:"user_id"`
	Name      string       `json:"name" db:"name"`
	Type      CategoryType `json:"type" db:"type"`
	Color     *string      `json:"color,omitempty" db:"color"`
	Icon      *string      `json:"icon,omitempty" db:"icon"`
	ParentID  *int         `json:"parent_id" db:"parent_id"`
	Children  []Category   `json:"children,omitempty" db:"-"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// CategoryUpdate описывает частичное обновление категории, nil-поля не меняются
type CategoryUpdate struct {
	Name     *string       `json:"name"`
	Type     *CategoryType `json:"type"`
	Color    *string       `json:"color"`
	Icon     *string       `json:"icon"`
	ParentID *int          `json:"parent_id"`
}
