package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"uptask-project/backend/logging"
	"uptask-project/backend/models"
	"uptask-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserCollection  Collection
	TokenCollection Collection
	EmailService    *EmailService
	BlackList       map[string]bool
}

func NewAuthService(userCollection, tokenCollection Collection, emailService *EmailService, blackList map[string]bool) *AuthService {
	return &AuthService{
		UserCollection:  userCollection,
		TokenCollection: tokenCollection,
		EmailService:    emailService,
		BlackList:       blackList,
	}
}

// Register creates an unconfirmed account, stores a verification token and
// mails the code. Fails with ErrConflict when the email is already taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	email = utils.NormalizeEmail(email)

	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return fmt.Errorf("an account with that email already exists: %w", ErrConflict)
	} else if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to look up user: %w", ErrInternal)
	}

	if s.BlackList[password] {
		return fmt.Errorf("password is too common, please choose a stronger one: %w", ErrInvalidRequest)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", ErrInternal)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      html.EscapeString(name),
		Email:     email,
		Password:  string(hashedPassword),
		Confirmed: false,
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("an account with that email already exists: %w", ErrConflict)
		}
		return fmt.Errorf("failed to save user: %w", ErrInternal)
	}

	code, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}

	s.EmailService.SendConfirmationEmail(user.Email, user.Name, code)
	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Verification code sent to '%s'", user.Email)
	return nil
}

// ConfirmAccount consumes a verification token and flips the owning account to
// confirmed. Wrong, already consumed and expired tokens are indistinguishable,
// the store garbage-collects expired ones.
func (s *AuthService) ConfirmAccount(ctx context.Context, code string) error {
	token, err := s.findToken(ctx, code)
	if err != nil {
		return err
	}

	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": token.UserID}, bson.M{"$set": bson.M{"confirmed": true}})
	if err != nil {
		return fmt.Errorf("failed to confirm account: %w", ErrInternal)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}

	if _, err := s.TokenCollection.DeleteOne(ctx, bson.M{"_id": token.ID}); err != nil {
		return fmt.Errorf("failed to consume token: %w", ErrInternal)
	}

	logging.Logger.Infof("Event ID: ACCOUNT_CONFIRMED, Description: Account '%s' confirmed", token.UserID.Hex())
	return nil
}

// Login verifies credentials and returns a signed session token. An
// unconfirmed account always fails with ErrUnauthorized and, as a side effect,
// gets a fresh confirmation code by email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = utils.NormalizeEmail(email)

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return "", fmt.Errorf("user not found: %w", ErrNotFound)
	}

	if !user.Confirmed {
		code, err := s.issueToken(ctx, user.ID)
		if err != nil {
			return "", err
		}
		s.EmailService.SendConfirmationEmail(user.Email, user.Name, code)
		return "", fmt.Errorf("account not confirmed, check your email for a new confirmation code: %w", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	sessionToken, err := utils.GenerateSessionToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", ErrInternal)
	}

	return sessionToken, nil
}

// RequestConfirmationCode re-issues a confirmation token for an unconfirmed
// account. Fails with ErrForbidden when the account is already confirmed.
func (s *AuthService) RequestConfirmationCode(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return fmt.Errorf("user is not registered: %w", ErrNotFound)
	}

	if user.Confirmed {
		return fmt.Errorf("account is already confirmed: %w", ErrForbidden)
	}

	code, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}

	s.EmailService.SendConfirmationEmail(user.Email, user.Name, code)
	return nil
}

// RequestPasswordReset issues a reset token keyed only by email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return fmt.Errorf("user is not registered: %w", ErrNotFound)
	}

	code, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}

	s.EmailService.SendPasswordResetEmail(user.Email, user.Name, code)
	return nil
}

// VerifyToken checks that a token is currently consumable without consuming it.
func (s *AuthService) VerifyToken(ctx context.Context, code string) error {
	_, err := s.findToken(ctx, code)
	return err
}

// ResetPasswordWithToken replaces the password hash of the token's owner and
// consumes the token.
func (s *AuthService) ResetPasswordWithToken(ctx context.Context, code, password string) error {
	if s.BlackList[password] {
		return fmt.Errorf("password is too common, please choose a stronger one: %w", ErrInvalidRequest)
	}

	token, err := s.findToken(ctx, code)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", ErrInternal)
	}

	result, err := s.UserCollection.UpdateOne(ctx, bson.M{"_id": token.UserID}, bson.M{"$set": bson.M{"password": string(hashedPassword)}})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", ErrInternal)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}

	if _, err := s.TokenCollection.DeleteOne(ctx, bson.M{"_id": token.ID}); err != nil {
		return fmt.Errorf("failed to consume token: %w", ErrInternal)
	}

	logging.Logger.Infof("Event ID: PASSWORD_RESET, Description: Password updated for user '%s'", token.UserID.Hex())
	return nil
}

// FindUserByID resolves a session credential's subject into a live user.
func (s *AuthService) FindUserByID(ctx context.Context, id string) (models.User, error) {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid user ID format: %w", ErrInvalidRequest)
	}

	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return models.User{}, fmt.Errorf("user not found: %w", ErrNotFound)
	}

	user.Password = ""
	return user, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID primitive.ObjectID) (string, error) {
	token := models.Token{
		ID:        primitive.NewObjectID(),
		AuthToken: utils.GenerateVerificationCode(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if _, err := s.TokenCollection.InsertOne(ctx, token); err != nil {
		return "", fmt.Errorf("failed to save token: %w", ErrInternal)
	}
	return token.AuthToken, nil
}

func (s *AuthService) findToken(ctx context.Context, code string) (models.Token, error) {
	var token models.Token
	if err := s.TokenCollection.FindOne(ctx, bson.M{"authToken": code}).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Token{}, fmt.Errorf("token not valid or expired: %w", ErrNotFound)
		}
		return models.Token{}, fmt.Errorf("error fetching token: %w", ErrInternal)
	}
	return token, nil
}
