package services

import (
	portsrepo "github.com/spendlog/spendlog_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlog/spendlog_backend/internal/core/ports/services"
	"github.com/spendlog/spendlog_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Credential = NewCredentialService(cfg, repos.UserRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.CredentialSvcFacade  = (*credentialService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)
