package swiss

import "github.com/riskibarqy/swiss-tournament/internal/domain/match"

// Seat is one side of a pairing.
type Seat struct {
	PlayerID int64
	Name     string
}

// Pairing assigns a player to an opponent for the next round. A nil Opponent is a bye.
type Pairing struct {
	Player   Seat
	Opponent *Seat
}

func (p Pairing) IsBye() bool {
	return p.Opponent == nil
}

// History is what the tournament already consumed: met pairs and bye recipients.
type History struct {
	Played map[match.PairKey]struct{}
	Byes   map[int64]struct{}
}

func NewHistory(played []match.PairKey, byes []int64) History {
	h := History{
		Played: make(map[match.PairKey]struct{}, len(played)),
		Byes:   make(map[int64]struct{}, len(byes)),
	}
	for _, key := range played {
		h.Played[match.NewPairKey(key.Low, key.High)] = struct{}{}
	}
	for _, id := range byes {
		h.Byes[id] = struct{}{}
	}
	return h
}

func (h History) HasPlayed(a, b int64) bool {
	_, ok := h.Played[match.NewPairKey(a, b)]
	return ok
}

func (h History) HadBye(playerID int64) bool {
	_, ok := h.Byes[playerID]
	return ok
}

// Pair builds the next round greedily: walking the standings from the top, each
// unplaced player meets the highest ranked unplaced player they have not met yet. A single leftover player gets a bye unless they already
// had one; any other leftover is reported as *UnresolvablePairingError.
//
// The returned order is the order the pairs were formed.
func Pair(standings []Standing, history History) ([]Pairing, error) {
	ranked := make([]Standing, len(standings))
	copy(ranked, standings)
	SortStandings(ranked)

	order := make([]int64, 0, len(ranked))
	names := make(map[int64]string, len(ranked))
	for _, row := range ranked {
		if _, dup := names[row.PlayerID]; dup {
			continue
		}
		names[row.PlayerID] = row.Name
		order = append(order, row.PlayerID)
	}

	seat := func(id int64) Seat {
		return Seat{PlayerID: id, Name: names[id]}
	}

	placed := make(map[int64]struct{}, len(order))
	pairings := make([]Pairing, 0, len(order)/2+1)
	for _, p := range order {
		if _, ok := placed[p]; ok {
			continue
		}
		for _, q := range order {
			if q == p {
				continue
			}
			if _, ok := placed[q]; ok {
				continue
			}
			if history.HasPlayed(p, q) {
				continue
			}
			opponent := seat(q)
			pairings = append(pairings, Pairing{Player: seat(p), Opponent: &opponent})
			placed[p] = struct{}{}
			placed[q] = struct{}{}
			break
		}
	}

	var unplaced []int64
	for _, id := range order {
		if _, ok := placed[id]; !ok {
			unplaced = append(unplaced, id)
		}
	}

	switch {
	case len(unplaced) == 0:
		return pairings, nil
	case len(unplaced) == 1 && !history.HadBye(unplaced[0]):
		return append(pairings, Pairing{Player: seat(unplaced[0])}), nil
	default:
		return nil, &UnresolvablePairingError{Unplaced: unplaced, Partial: pairings}
	}
}
