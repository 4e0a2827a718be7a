package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Record(ctx context.Context, tournamentID int64, result Result) (Match, error)
	ListResults(ctx context.Context, tournamentID int64) ([]Result, error)
	ListPlayedPairs(ctx context.Context, tournamentID int64) ([]PairKey, error)
	ListByeRecipients(ctx context.Context, tournamentID int64) ([]int64, error)
	DeleteByTournament(ctx context.Context, tournamentID int64) error
}
