package database

import "errors"

// Сентинельные ошибки уровня хранилища; обработчики переводят их в HTTP-статусы.
// Порядок проверок фиксированный: сначала существование записи (ErrNotFound),
// потом владелец (ErrForbidden).
var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrForbidden         = errors.New("нет доступа к этому ресурсу")
	ErrDuplicateName     = errors.New("такое имя уже занято")
	ErrDuplicateEmail    = errors.New("пользователь с таким email уже существует")
	ErrInvalidParent     = errors.New("выбранная родительская категория недействительна")
	ErrSelfParent        = errors.New("категория не может быть родителем самой себя")
	ErrParentHasChildren = errors.New("нельзя переместить родительскую категорию")
)
