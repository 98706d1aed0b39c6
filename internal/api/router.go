package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Srengsophea/instantly-email-service/internal/app"
)

// SetupRouter wires every HTTP endpoint, using thin closure wrappers so
// each handler receives the running *app.App instance.
func SetupRouter(a *app.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	/* ---------- public endpoints ---------- */
	r.POST("/signup", func(c *gin.Context) { handleSignup(a, c) })
	r.POST("/login", func(c *gin.Context) { handleLogin(a, c) })
	r.GET("/get_domains", func(c *gin.Context) { handleGetDomains(a, c) })

	/* ---------- session endpoints ---------- */
	m := NewMiddleware(a.Auth())
	authed := r.Group("/")
	authed.Use(m.AuthRequired())
	{
		authed.GET("/logout", func(c *gin.Context) { handleLogout(c) })
		authed.GET("/profile", func(c *gin.Context) { handleProfile(a, c) })
		authed.POST("/change_password", func(c *gin.Context) { handleChangePassword(a, c) })
		authed.POST("/change_username", func(c *gin.Context) { handleChangeUsername(a, c) })
		authed.POST("/generate_email", func(c *gin.Context) { handleGenerateEmail(a, c) })
		authed.GET("/get_user_emails", func(c *gin.Context) { handleGetUserEmails(a, c) })
		authed.GET("/get_inbox/:id", func(c *gin.Context) { handleGetInbox(a, c) })
		authed.POST("/delete_email/:id", func(c *gin.Context) { handleDeleteEmail(a, c) })
	}

	return r
}
