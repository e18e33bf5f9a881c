package services

import (
	"log/slog"

	"github.com/SscSPs/expense_portal/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/expense_portal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_portal/internal/core/ports/services"
	"github.com/SscSPs/expense_portal/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gws gateways.WorkflowGateways, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(repos.UserRepo, cfg.DirectorIDPrefix)
	container.History = NewHistoryService(repos.ExpenseRepo, cfg.HistoryFallbackAll)
	container.Director = NewDirectorService(repos.ExpenseRepo, gws.Decision)
	container.Submission = NewSubmissionService(gws.Submission, cfg.DefaultCurrency)
	container.Chat = NewChatService(gws.Chat)

	// The session registry drives the history and director services, so it is built last.
	container.Session = NewSessionService(container.Auth, container.History, container.Director, SessionOptions{
		RefreshInterval: cfg.RefreshInterval,
		Expiry:          cfg.SessionExpiryDuration,
		Logger:          logger,
	})

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade       = (*authService)(nil)
	_ portssvc.SessionSvcFacade    = (*sessionService)(nil)
	_ portssvc.SubmissionSvcFacade = (*submissionService)(nil)
	_ portssvc.HistorySvcFacade    = (*historyService)(nil)
	_ portssvc.DirectorSvcFacade   = (*directorService)(nil)
	_ portssvc.ChatSvcFacade       = (*chatService)(nil)
)
