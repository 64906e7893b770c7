package user

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"
	"ecommerceBackend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateEmailVerification(ctx context.Context, email string, isVerified bool) error
}

type AddressReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Address, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, body string) error
}

// SessionStore records login sessions. It is optional; without one logout is a no-op.
type SessionStore interface {
	StoreSession(ctx context.Context, session domain.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID string) error
}

// VerificationConfig drives the e-mail verification link. An empty Key turns
// verification mails off.
type VerificationConfig struct {
	Key           string
	DeploymentURL string
	APIPrefix     string
}

type RegisterInput struct {
	Username    string `validate:"required"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=6"`
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	Sex         string `validate:"required,oneof=male female others"`
	PhoneNumber string `validate:"required"`
}

// UpdateUserInput holds the fields to merge; nil fields are left unchanged.
type UpdateUserInput struct {
	Username     *string
	Email        *string
	Password     *string
	FirstName    *string
	LastName     *string
	Sex          *string
	Role         *string
	ProfilePhoto *string
	PhoneNumber  *string
}

type userService struct {
	userRepo     UserRepository
	addressRepo  AddressReader
	validate     *validator.Validate
	notifRepo    NotificationRepository
	sessions     SessionStore
	tokens       *utils.TokenIssuer
	verification VerificationConfig
}

const (
	verificationCodeTTL      = 5 * time.Minute
	SubjectRegisterAccount   = "Activate Your Account!"
	EmailBodyRegisterAccount = `Hello %v, activate your account by opening the link below</br></br>%v</br>note: the link is valid for %v minutes`
)

func NewUserService(
	userRepo UserRepository,
	addressRepo AddressReader,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	sessions SessionStore,
	tokens *utils.TokenIssuer,
	verification VerificationConfig,
) *userService {
	return &userService{
		userRepo:     userRepo,
		addressRepo:  addressRepo,
		validate:     validate,
		notifRepo:    notifRepo,
		sessions:     sessions,
		tokens:       tokens,
		verification: verification,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, errors.Wrap(err, "context error")
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validate.Struct(in); err != nil {
		logger.Warn("Invalid register request", "error", err)
		return domain.User{}, domain.ValidationError(registerMessage(err))
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email, uuid.Nil)
	if err != nil {
		logger.Error("Failed to check user uniqueness", "error", err)
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, domain.ConflictError("Username or email already exists")
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.Wrap(err, "failed to hash password")
	}

	newUser := domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Sex:          in.Sex,
		PhoneNumber:  in.PhoneNumber,
		Role:         domain.RoleUser,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "email", in.Email, "error", err)
		return domain.User{}, err
	}

	s.sendVerification(ctx, newUser)

	return newUser, nil
}

func registerMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return "All fields are required"
		case "email":
			return "Invalid email format"
		case "min":
			return "Password must be at least 6 characters"
		case "oneof":
			return "Sex must be one of male, female, others"
		}
	}

	return "Invalid user data"
}

func (s *userService) sendVerification(ctx context.Context, u domain.User) {
	if s.verification.Key == "" || s.notifRepo == nil {
		return
	}

	code, err := s.verificationCode(u.Email, time.Now().Add(verificationCodeTTL))
	if err != nil {
		logger.Error("Failed to build verification code", "email", u.Email, "error", err)
		return
	}

	link := s.verification.DeploymentURL + s.verification.APIPrefix + "/auth/email-verification/" + url.PathEscape(code)
	body := fmt.Sprintf(EmailBodyRegisterAccount, u.FirstName, link, int(verificationCodeTTL.Minutes()))

	if err := s.notifRepo.SendEmail(ctx, u.FirstName+" "+u.LastName, u.Email, SubjectRegisterAccount, body); err != nil {
		logger.Warn("Failed to send verification email", "email", u.Email, "error", err)
	}
}

func (s *userService) verificationCode(email string, expAt time.Time) (string, error) {
	plain := fmt.Sprintf("%v|%v", email, expAt.Unix())
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(plain), []byte(s.verification.Key))
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt verification code")
	}

	return goshortcute.StringtoBase64Encode(encrypted), nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Login with unknown email", "email", email)
			return "", domain.User{}, domain.UnauthorizedError("Invalid credentials")
		}
		logger.Error("Failed to find user for login", "error", err)
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		logger.Warn("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, domain.UnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.GenerateJWT(user.ID.String(), user.Role, user.IsVerified)
	if err != nil {
		logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", domain.User{}, errors.Wrap(err, "failed to generate token")
	}

	if s.sessions != nil {
		now := time.Now()
		session := domain.Session{
			UserID:     user.ID.String(),
			Role:       user.Role,
			IsVerified: user.IsVerified,
			Token:      token,
			IssuedAt:   now,
			ExpiresAt:  now.Add(s.tokens.TTL()),
		}
		if err := s.sessions.StoreSession(ctx, session, s.tokens.TTL()); err != nil {
			logger.Error("Failed to store session", "user_id", user.ID, "error", err)
			return "", domain.User{}, err
		}
	}

	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	if s.sessions == nil {
		return nil
	}

	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		logger.Error("Failed to delete session", "user_id", userID, "error", err)
		return err
	}

	return nil
}

func (s *userService) VerifyEmail(ctx context.Context, code string) error {
	invalid := domain.ValidationError("Invalid or expired url")

	if s.verification.Key == "" {
		return invalid
	}

	decoded := goshortcute.StringtoBase64Decode(code)
	plain, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.verification.Key))
	if err != nil {
		logger.Warn("Verifying email error", "error", err)
		return invalid
	}

	parts := strings.Split(plain, "|")
	if len(parts) != 2 {
		logger.Warn("Verifying email error", "code", plain)
		return invalid
	}

	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().After(time.Unix(ts, 0)) {
		return invalid
	}

	user, err := s.userRepo.FindByEmail(ctx, parts[0])
	if err != nil {
		logger.Warn("Verifying email error", "error", err)
		return invalid
	}

	if user.IsVerified {
		logger.Warn("Email already verified", "email", user.Email)
		return invalid
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.Email, true); err != nil {
		logger.Error("Verify email err", "error", err)
		return err
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (domain.UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.UserDetail{}, err
	}

	details, err := s.withAddresses(ctx, []domain.User{user})
	if err != nil {
		return domain.UserDetail{}, err
	}

	return details[0], nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.UserDetail, int64, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return nil, 0, err
	}

	details, err := s.withAddresses(ctx, users)
	if err != nil {
		return nil, 0, err
	}

	return details, int64(len(details)), nil
}

func (s *userService) CountUsers(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

func (s *userService) withAddresses(ctx context.Context, users []domain.User) ([]domain.UserDetail, error) {
	var ids []uuid.UUID
	for _, u := range users {
		if u.AddressID != nil {
			ids = append(ids, *u.AddressID)
		}
	}

	addresses, err := s.addressRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load user addresses", "error", err)
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Address, len(addresses))
	for _, a := range addresses {
		byID[a.ID] = a
	}

	details := make([]domain.UserDetail, 0, len(users))
	for _, u := range users {
		detail := domain.UserDetail{User: u}
		if u.AddressID != nil {
			if a, ok := byID[*u.AddressID]; ok {
				detail.Address = &a
			}
		}
		details = append(details, detail)
	}

	return details, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (domain.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", "user_id", id, "error", err)
		return domain.User{}, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := s.validate.Var(email, "required,email"); err != nil {
			return domain.User{}, domain.ValidationError("Invalid email format")
		}
		existing.Email = email
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return domain.User{}, domain.ValidationError("Username cannot be empty")
		}
		existing.Username = username
	}

	if in.Email != nil || in.Username != nil {
		taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, existing.Username, existing.Email, existing.ID)
		if err != nil {
			return domain.User{}, err
		}
		if taken {
			return domain.User{}, domain.ConflictError("Username or email already exists")
		}
	}

	if in.Password != nil {
		if err := s.validate.Var(*in.Password, "required,min=6"); err != nil {
			return domain.User{}, domain.ValidationError("Password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(*in.Password)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return domain.User{}, errors.Wrap(err, "failed to hash password")
		}
		existing.PasswordHash = string(passwordHash)
	}

	if in.Role != nil {
		if !domain.IsValidRole(*in.Role) {
			return domain.User{}, domain.ValidationError("Invalid role")
		}
		existing.Role = *in.Role
	}

	if in.Sex != nil {
		if err := s.validate.Var(*in.Sex, "oneof=male female others"); err != nil {
			return domain.User{}, domain.ValidationError("Sex must be one of male, female, others")
		}
		existing.Sex = *in.Sex
	}

	if in.FirstName != nil {
		existing.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		existing.LastName = *in.LastName
	}
	if in.ProfilePhoto != nil {
		existing.ProfilePhoto = *in.ProfilePhoto
	}
	if in.PhoneNumber != nil {
		existing.PhoneNumber = *in.PhoneNumber
	}

	if err := s.userRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update user", "user_id", id, "error", err)
		return domain.User{}, err
	}

	return existing, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", "user_id", id, "error", err)
		return err
	}

	return nil
}
