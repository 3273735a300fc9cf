package handlers

import (
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-api/internal/auth"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

type createCategoryRequest struct {
	Name     string              `json:"name"`
	Type     models.CategoryType `json:"type"`
	Color    *string             `json:"color"`
	Icon     *string             `json:"icon"`
	ParentID *int                `json:"parent_id"`
}

func validateCategoryFields(name *string, categoryType *models.CategoryType, color, icon *string) string {
	if name != nil && utf8.RuneCountInString(*name) < 3 {
		return "Название категории должно быть не короче 3 символов"
	}
	if categoryType != nil && !categoryType.Valid() {
		return "Неподдерживаемый тип категории"
	}
	if color != nil && utf8.RuneCountInString(*color) != 7 {
		return "Цвет должен состоять ровно из 7 символов"
	}
	if icon != nil && utf8.RuneCountInString(*icon) > 50 {
		return "Название иконки не должно превышать 50 символов"
	}
	return ""
}

func CreateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат категории"})
			return
		}
		if req.Name == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Не указано название категории"})
			return
		}
		if msg := validateCategoryFields(&req.Name, &req.Type, req.Color, req.Icon); msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		category := &models.Category{
			UserID:   auth.CurrentUserID(c),
			Name:     req.Name,
			Type:     req.Type,
			Color:    req.Color,
			Icon:     req.Icon,
			ParentID: req.ParentID,
		}
		if err := database.CreateCategory(pool, category); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Категория успешно создана", "category": category})
	}
}

func GetCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		category, err := database.GetCategoryForUser(pool, auth.CurrentUserID(c), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// ListCategoriesHandler отдает корневые категории пользователя с детьми
func ListCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.GetRootCategories(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func UpdateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		var req models.CategoryUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных для категории"})
			return
		}
		if msg := validateCategoryFields(req.Name, req.Type, req.Color, req.Icon); msg != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
			return
		}

		category, err := database.UpdateCategory(pool, auth.CurrentUserID(c), id, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Категория успешно обновлена", "category": category})
	}
}

func DeleteCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		if err := database.DeleteCategory(pool, auth.CurrentUserID(c), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Категория успешно удалена"})
	}
}
