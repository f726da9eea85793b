package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"studyhub/config"
	"studyhub/db"
	"studyhub/models"
	"studyhub/structs"
	"studyhub/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var authConfig *config.Config

// InitAuthController stores the loaded config for the auth handlers.
func InitAuthController(cfg *config.Config) {
	authConfig = cfg
}

func newCognitoClient(ctx context.Context) (*cognitoidentityprovider.Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(authConfig.Cognito.Region))
	if err != nil {
		return nil, err
	}
	return cognitoidentityprovider.NewFromConfig(awsCfg), nil
}

// SignUp registers a new account with Cognito.
func SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	client, err := newCognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authConfig.Cognito.AppClientId, authConfig.Cognito.AppClientSecret)
	_, err = client.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId:   aws.String(authConfig.Cognito.AppClientId),
		Password:   aws.String(request.Password),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(request.Email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(request.Email)},
			{Name: aws.String("nickname"), Value: aws.String(utils.ExtractNameFromEmail(request.Email))},
		},
	})
	if err != nil {
		log.Println("Error during sign-up:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-up successful"})
}

// VerifyEmail confirms a pending Cognito registration.
func VerifyEmail(ctx *gin.Context) {
	var request structs.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	client, err := newCognitoClient(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authConfig.Cognito.AppClientId, authConfig.Cognito.AppClientSecret)
	_, err = client.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(authConfig.Cognito.AppClientId),
		ConfirmationCode: aws.String(request.ConfirmationCode),
		Username:         aws.String(request.Email),
		SecretHash:       aws.String(secretHash),
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Email verification successful"})
}

// Login authenticates against Cognito, makes sure a user record
// exists, and issues the session token the rest of the API uses.
func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	client, err := newCognitoClient(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authConfig.Cognito.AppClientId, authConfig.Cognito.AppClientSecret)
	_, err = client.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(authConfig.Cognito.AppClientId),
		AuthParameters: map[string]string{
			"USERNAME":    request.Email,
			"PASSWORD":    request.Password,
			"SECRET_HASH": secretHash,
		},
	})
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	user, err := ensureUserRecord(ctx, request.Email)
	if err != nil {
		log.Printf("Error ensuring user record for %s: %v", request.Email, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	expiry := time.Duration(authConfig.JWT.Expiry) * time.Minute
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email, expiry)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token, "user": user})
}

// ensureUserRecord loads the user document for an email, creating it
// on first login.
func ensureUserRecord(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := db.Users().FindOne(dbCtx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	user = models.User{
		ID:          primitive.NewObjectID(),
		Email:       email,
		DisplayName: utils.ExtractNameFromEmail(email),
		Counters:    map[string]int{},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := db.Users().InsertOne(dbCtx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// currentUserID reads the authenticated user's id from the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	hex := c.GetString("userId")
	if hex == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
