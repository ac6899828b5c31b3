package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/burakserin/taskvault/internal/models"
	"github.com/google/uuid"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the redacted user representation. Every response embedding a
// user goes through NewUserResponse; password, sessions and avatar have no
// fields here, so they cannot leak regardless of the response path.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserUpdate carries the permitted profile mutations. Nil means the field was
// absent from the request.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

var userUpdateFields = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

// ParseUserUpdate decodes a PATCH /users/me body. Any key outside the
// allow-list rejects the whole update, so a partial apply never happens.
func ParseUserUpdate(body []byte) (*UserUpdate, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", ErrMalformedBody)
	}
	for key := range raw {
		if !userUpdateFields[key] {
			return nil, fmt.Errorf("field %q: %w", key, ErrFieldNotAllowed)
		}
	}

	var upd UserUpdate
	if err := decodeField(raw, "name", &upd.Name); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "email", &upd.Email); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "password", &upd.Password); err != nil {
		return nil, err
	}
	if err := decodeField(raw, "age", &upd.Age); err != nil {
		return nil, err
	}
	return &upd, nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst **T) error {
	msg, ok := raw[key]
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(msg, &v); err != nil {
		return fmt.Errorf("field %q: %w", key, ErrMalformedBody)
	}
	*dst = &v
	return nil
}
