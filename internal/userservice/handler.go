package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sushihentaime/pressroom/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, tokens *TokenManager, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterUser creates a ROLE_USER account, publishes a user.registered event and
// returns a token for the new user.
func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) (*JwtDto, error) {
	v := common.NewValidator()
	validateProfile(v, req.Username, req.FirstName, req.LastName, req.Email)
	validatePassword(v, req.Password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:          uuid.New(),
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Role:        RoleUser,
		CreatedDate: common.Now(),
	}

	if err := u.Password.set(req.Password); err != nil {
		return nil, err
	}

	if err := s.m.insertUser(ctx, &u); err != nil {
		return nil, err
	}

	s.publish(ctx, common.UserRegisteredKey, userEvent{ID: u.ID, Username: u.Username, Email: u.Email})

	return s.issueToken(&u)
}

// LoginUser checks the credentials and returns a fresh token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*JwtDto, error) {
	v := common.NewValidator()
	validateRequired(v, username, "username")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.issueToken(user)
}

func (s *UserService) issueToken(u *User) (*JwtDto, error) {
	token, err := s.tokens.Generate(u)
	if err != nil {
		return nil, err
	}

	return &JwtDto{Token: token, Role: u.Role, Username: u.Username}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]*User, error) {
	return s.m.getUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.m.getUserByID(ctx, id)
}

// UpdateUser replaces the profile of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*User, error) {
	u, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	validateProfile(v, req.Username, req.FirstName, req.LastName, req.Email)
	if req.Role != "" {
		validateRole(v, req.Role)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u.Username = req.Username
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email
	if req.Role != "" {
		u.Role = req.Role
	}

	if err := s.m.updateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// PatchUser overwrites only the fields present in req. The password is never changed here.
func (s *UserService) PatchUser(ctx context.Context, id uuid.UUID, req PatchUserRequest) (*User, error) {
	u, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := common.NewValidator()
	if req.Username != nil {
		validateUsername(v, *req.Username)
		u.Username = *req.Username
	}
	if req.FirstName != nil {
		validateRequired(v, *req.FirstName, "firstName")
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		validateRequired(v, *req.LastName, "lastName")
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		validateEmail(v, *req.Email)
		u.Email = *req.Email
	}
	if req.Role != nil {
		validateRole(v, *req.Role)
		u.Role = *req.Role
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role Role) (*User, error) {
	v := common.NewValidator()
	validateRole(v, role)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.m.getUserByID(ctx, id)
}

// DeleteUser removes the user together with their articles and comments.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.m.deleteUser(ctx, id)
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *UserService) Authenticate(ctx context.Context, token string) (*User, *Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.m.getUserByUsername(ctx, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, nil, ErrInvalidToken
		default:
			return nil, nil, err
		}
	}

	return u, claims, nil
}

// LogoutUser revokes the token the claims were parsed from.
func (s *UserService) LogoutUser(claims *Claims) {
	s.tokens.Revoke(claims)
}

func (s *UserService) publish(ctx context.Context, key common.BindingKey, event any) {
	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not encode event", "key", key, "error", err)
		return
	}

	if err := s.mb.Publish(ctx, msg, key, common.EventsExchange); err != nil {
		s.logger.Error("could not publish event", "key", key, "error", err)
	}
}
