/*
Package card
File: queue.go
Description:
    The player iterator a card walks while it waits for decisions.
*/

package card

import "github.com/everforgeworks/galaxy-haulers/internal/flight"

// Queue is the player iterator of the card being played. Cards reset it at
// start (usually to the flying board ranking) and whenever a sub-sequence
// targets only some players.
type Queue struct {
	players []*flight.Player
	idx     int
}

// Reset replaces the players to iterate over and rewinds to the first one.
func (q *Queue) Reset(players []*flight.Player) {
	q.players = append(q.players[:0:0], players...)
	q.idx = 0
}

// Current is the player expected to act, or nil when the queue is exhausted.
func (q *Queue) Current() *flight.Player {
	if q.idx >= len(q.players) {
		return nil
	}
	return q.players[q.idx]
}

// Next advances to the following player and reports whether there is one.
func (q *Queue) Next() bool {
	if q.idx < len(q.players) {
		q.idx++
	}
	return q.idx < len(q.players)
}

// Done reports whether every player has been visited.
func (q *Queue) Done() bool {
	return q.idx >= len(q.players)
}

// Players returns the players being iterated.
func (q *Queue) Players() []*flight.Player {
	return q.players
}
