package services

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first; the document and reporting services resolve
	// account names through it.
	container.Account = NewAccountService(repos.AccountRepo)

	container.Document = NewDocumentService(repos.DocumentRepo, repos.LedgerRepo, container.Account, cfg.CompensationMode)
	container.Feed = NewFeedService(repos.FeedRepo)
	container.Reporting = NewReportingService(repos.LedgerRepo, repos.DocumentRepo, container.Account)

	return container
}
