package service

// LedgerMetrics records balance mutation outcomes.
type LedgerMetrics interface {
	// ObserveMutation counts one finished apply, labelled by transaction type and outcome code.
	ObserveMutation(transactionType, outcome string)
	// ObserveVersionConflict counts one lost compare-and-swap race.
	ObserveVersionConflict()
	// ObserveEventPublishFailure counts a wallet event dropped after commit.
	ObserveEventPublishFailure()
}
