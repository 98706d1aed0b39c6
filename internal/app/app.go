package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Srengsophea/instantly-email-service/internal/auth"
	"github.com/Srengsophea/instantly-email-service/internal/config"
	"github.com/Srengsophea/instantly-email-service/internal/mailtm"
	"github.com/Srengsophea/instantly-email-service/internal/service"
	"github.com/Srengsophea/instantly-email-service/internal/store"
)

/* ------------------------------------------------------------------
   App struct — runtime container
-------------------------------------------------------------------*/

type App struct {
	cfg       config.Config
	store     *store.Store
	provider  *mailtm.Client
	auth      *auth.Service
	accounts  *service.Accounts
	mailboxes *service.Mailboxes
	webRouter *gin.Engine
}

// New wires every layer from an already loaded configuration.
func New(cfg config.Config) (*App, error) {
	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		store:    st,
		provider: mailtm.New(cfg.ProviderURL),
		auth:     auth.NewService(cfg.SecretKey),
	}
	a.accounts = service.NewAccounts(st, a.auth)
	a.mailboxes = service.NewMailboxes(st, a.provider)
	return a, nil
}

/* ------------------------------------------------------------------
   Public getters used by the API layer
-------------------------------------------------------------------*/

func (a *App) GetConfig() config.Config      { return a.cfg }
func (a *App) Auth() *auth.Service           { return a.auth }
func (a *App) Accounts() *service.Accounts   { return a.accounts }
func (a *App) Mailboxes() *service.Mailboxes { return a.mailboxes }
func (a *App) Provider() *mailtm.Client      { return a.provider }
func (a *App) SetWebRouter(r *gin.Engine)    { a.webRouter = r }
