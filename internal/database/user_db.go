package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-api/models"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser регистрирует нового пользователя
func RegisterUser(pool *pgxpool.Pool, user *models.User) error {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки email: %v", err)
	}
	if exists {
		return ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	query := `
		INSERT INTO users (email, password, name) VALUES ($1, $2, $3) RETURNING id, created_at`
	err = pool.QueryRow(context.Background(), query, user.Email, hashedPassword, user.Name).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении пользователя: %v", err)
	}
	user.Password = ""
	return nil
}

func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password, name, created_at FROM users WHERE email = $1`
	err := pool.QueryRow(context.Background(), query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	user.Password = ""
	return &user, nil
}

func GetUserByEmail(pool *pgxpool.Pool, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, created_at FROM users WHERE email = $1`
	err := pool.QueryRow(context.Background(), query, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %v", err)
	}
	return &user, nil
}

// UpdateUserPassword перехеширует и сохраняет новый пароль пользователя
func UpdateUserPassword(pool *pgxpool.Pool, userID int, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	result, err := pool.Exec(context.Background(),
		`UPDATE users SET password = $1 WHERE id = $2`, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пароля: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func ChangeUserName(pool *pgxpool.Pool, userID int, name string) error {
	result, err := pool.Exec(context.Background(),
		`UPDATE users SET name = $1 WHERE id = $2`, name, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении имени: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
