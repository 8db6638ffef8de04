/*
Package card
File: barrage.go
Description:
    A barrage fires a list of dangerous objects at a list of target players.
    For each object: THROW_DICES picks the line, then every target resolves
    DANGEROUS_ATTACK (and CHECK_SHIPBOARD_AFTER_ATTACK when its ship split).
    When the last target has faced the last object the barrage hands control
    back to the card through finish.
*/

package card

import (
	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type barrage struct {
	card    *base
	objects []ship.DangerousObject
	targets []*flight.Player
	next    int
	current ship.DangerousObject
	finish  func() error
}

// start aims the objects at the targets; with nothing to fire it finishes at once.
func (br *barrage) start(objects []ship.DangerousObject, targets []*flight.Player, finish func() error) error {
	br.objects, br.targets, br.next, br.finish = objects, targets, 0, finish
	if len(objects) == 0 || len(targets) == 0 {
		return finish()
	}
	br.card.queue().Reset(targets)
	br.card.state = StateThrowDices
	return nil
}

func (br *barrage) throwDices(Choices) error {
	d1, d2 := br.card.table.RollDice()
	obj := br.objects[br.next]
	obj.Line = d1 + d2
	br.current = obj
	br.next++
	br.card.table.Attack(obj)
	br.card.queue().Reset(br.targets)
	br.card.state = StateDangerousAttack
	return nil
}

func (br *barrage) dangerousAttack(ch Choices) error {
	p := br.card.current()
	out := p.Ship.HandleDangerousObject(br.current, ch.Defense())
	br.card.log().Debug("dangerous object resolved",
		zap.String("player", p.Nickname),
		zap.Stringer("object", br.current.Kind),
		zap.Int("line", br.current.Line),
		zap.Bool("defended", out.Defended),
		zap.Bool("destroyed", out.Destroyed))
	if len(p.Ship.Parts()) > 0 {
		br.card.state = StateCheckShipboardAfterAttack
		return nil
	}
	return br.advance()
}

func (br *barrage) checkShipboard(ch Choices) error {
	keepPart(br.card.current(), ch)
	return br.advance()
}

// advance moves to the next target, then to the next object.
func (br *barrage) advance() error {
	if br.card.queue().Next() {
		br.card.state = StateDangerousAttack
		return nil
	}
	if br.next < len(br.objects) {
		br.card.queue().Reset(br.targets)
		br.card.state = StateThrowDices
		return nil
	}
	return br.finish()
}

func (br *barrage) register(t map[State]transition) {
	t[StateThrowDices] = br.throwDices
	t[StateDangerousAttack] = br.dangerousAttack
	t[StateCheckShipboardAfterAttack] = br.checkShipboard
}
