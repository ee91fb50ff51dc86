package handler

import (
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/auth"
	"go.uber.org/zap"
)

const sessionKey = "pfas.session"

type AuthHandler struct {
	Gate   *auth.Gate
	Tokens *auth.TokenIssuer

	// Enforce makes RequireAdmin reject requests without a valid bearer token.
	Enforce bool
}

type keyRequest struct {
	Code string `json:"code"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

//VerifyKey checks the shared access code of the viewer gate
func (ah *AuthHandler) VerifyKey(ctx iris.Context) {

	var req keyRequest
	if err := ctx.ReadJSON(&req); err != nil || !ah.Gate.VerifyKey(req.Code) {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"success": false, "message": "Invalid Access Key"})
		return
	}
	ctx.JSON(iris.Map{"success": true, "message": "Access Granted"})
}

//Login checks admin credentials and answers a bearer token for the mutating endpoints
func (ah *AuthHandler) Login(ctx iris.Context) {

	var req loginRequest
	if err := ctx.ReadJSON(&req); err != nil || !ah.Gate.Login(strings.TrimSpace(req.Username), req.Password) {
		zap.L().Info("rejected admin login", zap.String("remote", ctx.RemoteAddr()))
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"success": false, "message": "Invalid Credentials"})
		return
	}

	token, expires, err := ah.Tokens.Issue(strings.TrimSpace(req.Username))
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(iris.Map{
		"success":    true,
		"message":    "Login Successful",
		"token":      token,
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}

//Session reports the admin session carried by the bearer token
func (ah *AuthHandler) Session(ctx iris.Context) {

	session, ok := ah.authenticate(ctx)
	if !ok {
		return
	}
	ctx.JSON(iris.Map{
		"success":    true,
		"subject":    session.Subject,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// RequireAdmin guards mutating routes.
func (ah *AuthHandler) RequireAdmin(ctx iris.Context) {
	if !ah.Enforce {
		ctx.Next()
		return
	}
	session, ok := ah.authenticate(ctx)
	if !ok {
		return
	}
	ctx.Values().Set(sessionKey, session)
	ctx.Next()
}

// actor names the admin behind a request for the logs.
func actor(ctx iris.Context) string {
	if s, ok := ctx.Values().Get(sessionKey).(*auth.Session); ok {
		return s.Subject
	}
	return "anonymous"
}

func (ah *AuthHandler) authenticate(ctx iris.Context) (*auth.Session, bool) {
	header := ctx.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if header == "" || token == header {
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"error": "Unauthorized"})
		return nil, false
	}
	session, err := ah.Tokens.Verify(token)
	if err != nil {
		zap.L().Debug("bearer token rejected", zap.Error(err))
		ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"error": "Unauthorized"})
		return nil, false
	}
	return session, true
}
