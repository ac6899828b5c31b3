package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/burakserin/taskvault/internal/config"
	"github.com/burakserin/taskvault/internal/dto"
	"github.com/burakserin/taskvault/internal/models"
	"github.com/burakserin/taskvault/internal/validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost is the fixed work factor for password hashes.
const bcryptCost = 8

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("unable to login")
	ErrUserNotFound       = errors.New("user not found")
	ErrAvatarNotFound     = errors.New("avatar not found")
	ErrNotAuthenticated   = errors.New("please authenticate")
)

type UserService struct {
	db     *gorm.DB
	secret []byte
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, secret: []byte(cfg.JWTSecret)}
}

// Signup validates, hashes and persists a new account, then issues the first
// session token.
func (s *UserService) Signup(req *dto.SignupRequest) (*models.User, string, error) {
	name := strings.TrimSpace(req.Name)
	if ferr := validation.Name(name); ferr != nil {
		return nil, "", ferr
	}

	email := validation.NormalizeEmail(req.Email)
	if ferr := validation.Email(email); ferr != nil {
		return nil, "", ferr
	}

	if ferr := validation.Password(req.Password); ferr != nil {
		return nil, "", ferr
	}
	if ferr := validation.Age(req.Age); ferr != nil {
		return nil, "", ferr
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: hash,
		Age:      req.Age,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The unique index is the authority on duplicates; the pre-check above
		// only narrows the race window. Anything else is an infrastructure
		// failure and must not masquerade as a validation error.
		if isDuplicateKey(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login resolves credentials to a user. Unknown email and wrong password
// produce the same error so the endpoint cannot be used to enumerate accounts.
func (s *UserService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", validation.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueToken signs a new session token and records it. Tokens are additive;
// issuing one never invalidates the others.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	raw, err := signToken(user.ID, s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	record := models.SessionToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}
	return raw, nil
}

// AuthenticateToken resolves a bearer token to its user. Both checks are
// load-bearing: the signature proves the token was issued here, the
// session_tokens row proves it has not been revoked since.
func (s *UserService) AuthenticateToken(raw string) (*models.User, error) {
	userID, err := parseToken(raw, s.secret)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	var session models.SessionToken
	if err := s.db.Where("user_id = ? AND token_hash = ?", userID, hashToken(raw)).First(&session).Error; err != nil {
		return nil, ErrNotAuthenticated
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrNotAuthenticated
	}
	return &user, nil
}

// Logout revokes exactly the session the request was made with.
func (s *UserService) Logout(userID uuid.UUID, raw string) error {
	return s.db.Where("user_id = ? AND token_hash = ?", userID, hashToken(raw)).
		Delete(&models.SessionToken{}).Error
}

// LogoutAll revokes every session the user has.
func (s *UserService) LogoutAll(userID uuid.UUID) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.SessionToken{}).Error
}

// Update applies a parsed allow-list update to the user. Field validation runs
// again and a changed password is re-hashed before persistence.
func (s *UserService) Update(user *models.User, upd *dto.UserUpdate) error {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if ferr := validation.Name(name); ferr != nil {
			return ferr
		}
		user.Name = name
	}

	if upd.Email != nil {
		email := validation.NormalizeEmail(*upd.Email)
		if ferr := validation.Email(email); ferr != nil {
			return ferr
		}
		if email != user.Email {
			var existing models.User
			if err := s.db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error; err == nil {
				return ErrEmailTaken
			}
		}
		user.Email = email
	}

	if upd.Password != nil {
		if ferr := validation.Password(*upd.Password); ferr != nil {
			return ferr
		}
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return err
		}
		user.Password = hash
	}

	if upd.Age != nil {
		if ferr := validation.Age(*upd.Age); ferr != nil {
			return ferr
		}
		user.Age = *upd.Age
	}

	if err := s.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes the account, its tasks and its sessions in one transaction
// so a crash cannot leave orphaned tasks behind.
func (s *UserService) Delete(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.SessionToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetAvatar stores normalized PNG bytes. Callers resize and re-encode first.
func (s *UserService) SetAvatar(user *models.User, png []byte) error {
	user.Avatar = png
	return s.db.Model(user).Update("avatar", png).Error
}

func (s *UserService) ClearAvatar(user *models.User) error {
	user.Avatar = nil
	return s.db.Model(user).Update("avatar", nil).Error
}

// GetAvatar returns the stored PNG for any user id, no auth required. A
// missing user and a missing avatar are the same failure to the caller.
func (s *UserService) GetAvatar(id uuid.UUID) ([]byte, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, ErrAvatarNotFound
	}
	if len(user.Avatar) == 0 {
		return nil, ErrAvatarNotFound
	}
	return user.Avatar, nil
}

// isDuplicateKey recognizes a unique-index violation both through GORM's
// translated error and through the raw Postgres error code, so the mapping
// does not depend on TranslateError being enabled.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 23505 is SQLSTATE unique_violation.
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// hashPassword is the single place plaintext becomes a hash. It is called on
// signup and on password change only, so a stored hash is never hashed again.
func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(plain)), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
