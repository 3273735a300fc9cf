package database_test

import (
	"errors"
	"testing"

	"github.com/valeriaulyamaeva/wallet-api/internal/database"
	"github.com/valeriaulyamaeva/wallet-api/models"
)

func TestRegisterAndAuthenticateUser(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool)
	if user.ID == 0 {
		t.Fatalf("после регистрации не присвоен ID")
	}

	authenticated, err := database.AuthenticateUser(pool, user.Email, "secret-password")
	if err != nil {
		t.Fatalf("ошибка аутентификации: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Errorf("аутентифицирован не тот пользователь: получили %d, хотели %d", authenticated.ID, user.ID)
	}
	if authenticated.Password != "" {
		t.Errorf("хеш пароля не должен возвращаться")
	}

	if _, err := database.AuthenticateUser(pool, user.Email, "wrong-password"); err == nil {
		t.Errorf("аутентификация с неверным паролем должна была провалиться")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool)

	duplicate := &models.User{
		Email:    user.Email,
		Password: "another-password",
		Name:     "Duplicate",
	}
	err := database.RegisterUser(pool, duplicate)
	if !errors.Is(err, database.ErrDuplicateEmail) {
		t.Errorf("ожидали ErrDuplicateEmail, получили %v", err)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool)

	if err := database.UpdateUserPassword(pool, user.ID, "new-password-123"); err != nil {
		t.Fatalf("ошибка обновления пароля: %v", err)
	}

	if _, err := database.AuthenticateUser(pool, user.Email, "secret-password"); err == nil {
		t.Errorf("старый пароль все еще работает")
	}
	if _, err := database.AuthenticateUser(pool, user.Email, "new-password-123"); err != nil {
		t.Errorf("новый пароль не работает: %v", err)
	}
}

func TestChangeUserName(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool)

	if err := database.ChangeUserName(pool, user.ID, "Renamed User"); err != nil {
		t.Fatalf("ошибка смены имени: %v", err)
	}

	updated, err := database.GetUserByEmail(pool, user.Email)
	if err != nil {
		t.Fatalf("ошибка получения пользователя: %v", err)
	}
	if updated.Name != "Renamed User" {
		t.Errorf("имя не обновилось: получили %q", updated.Name)
	}
}
