package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	gcrypto "github.com/Laisky/go-utils/v6/crypto"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tech-blog-pro/blog-api/internal/web/blog/dto"
	"github.com/tech-blog-pro/blog-api/internal/web/blog/model"
	mongoSDK "github.com/tech-blog-pro/blog-api/library/db/mongo"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

// UserRegister creates a new account. Token issuance happens elsewhere.
func (s *Blog) UserRegister(ctx context.Context, req *dto.SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if !usernameRe.MatchString(username) {
		return nil, errors.Wrap(model.ErrInvalid, "username must be 3-30 alphanumeric or underscore characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.Wrapf(model.ErrInvalid, "invalid email %q", email)
	}
	if len(password) < 6 {
		return nil, errors.Wrap(model.ErrInvalid, "password must be at least 6 characters")
	}

	col := s.dao.GetUsersCol()

	// check duplicate
	n, err := col.CountDocuments(ctx, bson.M{
		"$or": bson.A{
			bson.M{"username": username},
			bson.M{"email": email},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "check duplicate user")
	}
	if n > 0 {
		return nil, errors.Wrapf(model.ErrDuplicate, "user %q", username)
	}

	pwd, err := gcrypto.PasswordHash([]byte(password), gutils.HashTypeSha256)
	if err != nil {
		return nil, errors.Wrapf(err, "generate password hash for %q", username)
	}

	user := model.NewUser()
	user.Username = username
	user.Email = email
	user.Password = pwd
	user.VerificationToken = uuid.NewString()

	if _, err = col.InsertOne(ctx, user); err != nil {
		if mongoSDK.IsDup(err) {
			return nil, errors.Wrapf(model.ErrDuplicate, "user %q", username)
		}

		return nil, errors.Wrapf(err, "insert user %q", username)
	}

	s.logger.Info("registered new user", zap.String("username", username))
	return user, nil
}

// VerifyEmail marks the account matching token as verified and burns
// the token.
func (s *Blog) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errors.Wrap(model.ErrInvalid, "token is required")
	}

	user := new(model.User)
	if err := s.dao.GetUsersCol().FindOneAndUpdate(ctx,
		bson.M{"verificationToken": token},
		bson.M{
			"$set":   bson.M{"isVerified": true, "updatedAt": gutils.Clock.GetUTCNow()},
			"$unset": bson.M{"verificationToken": ""},
		},
	).Decode(user); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "verification token")
		}

		return nil, errors.Wrap(err, "verify email")
	}

	user.IsVerified = true
	user.VerificationToken = ""

	s.logger.Info("verified user email", zap.String("username", user.Username))
	return user, nil
}

// ValidateLogin checks account (username or email) and password and
// returns the active user. The last login stamp is best-effort.
func (s *Blog) ValidateLogin(ctx context.Context, account, password string) (*model.User, error) {
	s.logger.Debug("ValidateLogin", zap.String("account", account))

	user := new(model.User)
	if err := s.dao.GetUsersCol().FindOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"username": account},
			bson.M{"email": strings.ToLower(account)},
		},
	}).Decode(user); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, errors.Wrap(model.ErrNotFound, "user")
		}

		return nil, errors.Wrapf(err, "find user %q", account)
	}

	if err := gcrypto.VerifyHashedPassword([]byte(password), user.Password); err != nil {
		return nil, errors.Wrapf(err, "verify password for %q", account)
	}

	if !user.IsActive {
		return nil, errors.Errorf("user %q is deactivated", account)
	}

	now := gutils.Clock.GetUTCNow()
	if _, err := s.dao.GetUsersCol().UpdateByID(ctx, user.ID,
		bson.M{"$set": bson.M{"lastLogin": now}}); err != nil {
		s.logger.Warn("update last login", zap.Error(err), zap.String("account", account))
	}
	user.LastLogin = &now

	return user, nil
}

// UpdateProfile applies req to user's own profile.
func (s *Blog) UpdateProfile(ctx context.Context,
	user *model.User, req *dto.UpdateProfileRequest) (*model.User, error) {
	set := bson.M{"updatedAt": gutils.Clock.GetUTCNow()}
	if req.Bio != nil {
		set["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.FirstName != nil {
		set["firstName"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		set["lastName"] = strings.TrimSpace(*req.LastName)
	}
	if req.ProfilePicture != nil {
		set["profilePicture"] = *req.ProfilePicture
	}

	if _, err := s.dao.GetUsersCol().
		UpdateByID(ctx, user.ID, bson.M{"$set": set}); err != nil {
		return nil, errors.Wrapf(err, "update user %q", user.Username)
	}

	return s.LoadUserByID(ctx, user.ID)
}

// DeactivateUser soft-deletes the target account; allowed for the
// account owner or an admin.
func (s *Blog) DeactivateUser(ctx context.Context,
	actor *model.User, target *model.User) error {
	if !actor.IsAdmin && actor.ID != target.ID {
		return errors.Wrap(model.ErrForbidden, "only the owner or an admin can deactivate this account")
	}

	if _, err := s.dao.GetUsersCol().UpdateByID(ctx, target.ID, bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": gutils.Clock.GetUTCNow(),
		},
	}); err != nil {
		return errors.Wrapf(err, "deactivate user %q", target.Username)
	}

	s.logger.Info("deactivated user",
		zap.String("target", target.Username), zap.String("actor", actor.Username))
	return nil
}
