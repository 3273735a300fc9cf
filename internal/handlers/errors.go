package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/wallet-api/internal/database"
)

// respondError переводит ошибку хранилища в HTTP-ответ; детали внутренних
// ошибок остаются в логе и не уходят клиенту
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
	case errors.Is(err, database.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Нет доступа к этому ресурсу"})
	case errors.Is(err, database.ErrDuplicateName):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Такое имя уже занято"})
	case errors.Is(err, database.ErrDuplicateEmail):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Пользователь с таким email уже существует"})
	case errors.Is(err, database.ErrInvalidParent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Выбранная родительская категория недействительна"})
	case errors.Is(err, database.ErrSelfParent):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Категория не может быть родителем самой себя"})
	case errors.Is(err, database.ErrParentHasChildren):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Нельзя переместить родительскую категорию"})
	default:
		log.Printf("внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Что-то пошло не так"})
	}
}
