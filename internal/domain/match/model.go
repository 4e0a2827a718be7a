package match

import "fmt"

// Result is the outcome of one match. It is either Decisive or Bye.
type Result interface {
	// WinnerID is the player credited with the win.
	WinnerID() int64
	isResult()
}

// Decisive is a match played between two players with a real loser.
type Decisive struct {
	Winner int64
	Loser  int64
}

func (d Decisive) WinnerID() int64 { return d.Winner }
func (Decisive) isResult()         {}

// Bye is an automatic win awarded to a player without an opponent.
type Bye struct {
	Winner int64
}

func (b Bye) WinnerID() int64 { return b.Winner }
func (Bye) isResult()         {}

// Match is a recorded result linked to the tournament it was played in.
type Match struct {
	ID           int64
	TournamentID int64
	Result       Result
}

// Validate checks the result shape. Membership checks belong to the caller.
func Validate(r Result) error {
	switch v := r.(type) {
	case Decisive:
		if v.Winner <= 0 || v.Loser <= 0 {
			return fmt.Errorf("winner and loser ids must be > 0")
		}
		if v.Winner == v.Loser {
			return fmt.Errorf("winner and loser must be different players")
		}
	case Bye:
		if v.Winner <= 0 {
			return fmt.Errorf("bye winner id must be > 0")
		}
	case nil:
		return fmt.Errorf("match result is required")
	default:
		return fmt.Errorf("unsupported match result %T", r)
	}

	return nil
}

// PairKey identifies an unordered pair of players that already met.
type PairKey struct {
	Low  int64
	High int64
}

func NewPairKey(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// PlayedPairs returns the distinct decisive pairs found in results.
func PlayedPairs(results []Result) []PairKey {
	seen := make(map[PairKey]struct{}, len(results))
	out := make([]PairKey, 0, len(results))
	for _, r := range results {
		d, ok := r.(Decisive)
		if !ok {
			continue
		}
		key := NewPairKey(d.Winner, d.Loser)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// ByeRecipients returns the distinct winners of bye results, in first-seen order.
func ByeRecipients(results []Result) []int64 {
	seen := make(map[int64]struct{})
	out := make([]int64, 0)
	for _, r := range results {
		b, ok := r.(Bye)
		if !ok {
			continue
		}
		if _, dup := seen[b.Winner]; dup {
			continue
		}
		seen[b.Winner] = struct{}{}
		out = append(out, b.Winner)
	}

	return out
}
