package userservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	AnonymousUser = &User{}
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	tokens *TokenManager
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Password    Password  `json:"-"`
	Role        Role      `json:"role"`
	CreatedDate time.Time `json:"createdDate"`
}

// JwtDto is returned by signup and login.
type JwtDto struct {
	Token    string `json:"token"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest replaces every profile field. An empty Role keeps the current one.
// Password is accepted and ignored.
type UpdateUserRequest struct {
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	Password  *string `json:"password"`
}

// PatchUserRequest only overwrites the fields that are present.
type PatchUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Role      *Role   `json:"role"`
	Password  *string `json:"password"`
}

type userEvent struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}
