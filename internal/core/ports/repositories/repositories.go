package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	AccountRepo  AccountRepository
	LedgerRepo   LedgerRepository
	DocumentRepo DocumentRepository
	FeedRepo     FeedRepository
}
