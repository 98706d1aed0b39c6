package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Srengsophea/instantly-email-service/internal/app"
	"github.com/Srengsophea/instantly-email-service/internal/service"
)

/* ----------------------------------------------------------------
   DTO types — field names follow the browser client's JSON bodies
-----------------------------------------------------------------*/

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UsernameChange struct {
	NewUsername string `json:"new_username"`
}

type EmailGeneration struct {
	Domain string `json:"domain"`
}

/* ----------------------------------------------------------------
   helpers
-----------------------------------------------------------------*/

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
}

func startSession(a *app.App, c *gin.Context, userID string) error {
	token, err := a.Auth().GenerateToken(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int((7 * 24 * time.Hour).Seconds()), "/", "", false, true)
	return nil
}

/* ================================================================
   ACCOUNT HANDLERS
================================================================ */

func handleSignup(a *app.App, c *gin.Context) {
	var in Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid request"})
		return
	}

	user, err := a.Accounts().Register(in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if err := startSession(a, c, user.ID); err != nil {
		c.JSON(500, gin.H{"success": false, "error": "failed to start session"})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "user created successfully"})
}

func handleLogin(a *app.App, c *gin.Context) {
	var in Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid request"})
		return
	}

	user, err := a.Accounts().Login(in.Username, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	if err := startSession(a, c, user.ID); err != nil {
		c.JSON(500, gin.H{"success": false, "error": "failed to start session"})
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "login successful"})
}

func handleLogout(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func handleChangePassword(a *app.App, c *gin.Context) {
	var in PasswordChange
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := a.Accounts().ChangePassword(c.GetString("userID"), in.CurrentPassword, in.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "password changed successfully"})
}

func handleChangeUsername(a *app.App, c *gin.Context) {
	var in UsernameChange
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(400, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if err := a.Accounts().ChangeUsername(c.GetString("userID"), in.NewUsername); err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "username changed successfully"})
}

func handleProfile(a *app.App, c *gin.Context) {
	user, err := a.Accounts().Get(c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	// password hash stays server-side
	c.JSON(200, gin.H{"success": true, "user": gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"created_at": user.CreatedAt,
	}})
}

/* ================================================================
   MAILBOX HANDLERS
================================================================ */

func handleGenerateEmail(a *app.App, c *gin.Context) {
	// the body is optional: an absent or empty domain picks the first
	// available one
	var in EmailGeneration
	_ = c.ShouldBindJSON(&in)

	box, err := a.Mailboxes().Generate(c.Request.Context(), c.GetString("userID"), in.Domain)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "email": box})
}

func handleGetUserEmails(a *app.App, c *gin.Context) {
	emails := a.Mailboxes().ListForUser(c.GetString("userID"))
	c.JSON(200, gin.H{"emails": emails})
}

func handleGetInbox(a *app.App, c *gin.Context) {
	messages, err := a.Mailboxes().FetchInbox(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "messages": messages})
}

func handleDeleteEmail(a *app.App, c *gin.Context) {
	if err := a.Mailboxes().Delete(c.Param("id"), c.GetString("userID")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true, "message": "email deleted successfully"})
}

/* ================================================================
   PUBLIC HANDLERS
================================================================ */

func handleGetDomains(a *app.App, c *gin.Context) {
	c.JSON(200, gin.H{"domains": a.Provider().Domains(c.Request.Context())})
}
