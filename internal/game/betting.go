package game

// Street represents the betting round
type Street int

const (
	Deal Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	if s < Deal || s > River {
		return "unknown"
	}
	return [...]string{"deal", "flop", "turn", "river"}[s]
}

// ActionKind classifies a normalized decision
type ActionKind int

const (
	Check ActionKind = iota
	Call
	Raise
	Fold
	AllIn
)

func (a ActionKind) String() string {
	if a < Check || a > AllIn {
		return "unknown"
	}
	return [...]string{"check", "call", "raise", "fold", "allin"}[a]
}

// Action is one decision as the engine interpreted it
type Action struct {
	Seat      int
	Street    Street
	Requested int // Raw value returned by the participant
	Amount    int // Street commitment after the action
	Added     int // Chips moved into the pot by this action
	Kind      ActionKind
}

// normalize turns a requested street commitment into an effective one.
// available is everything the player could have committed this street
// (remaining stack plus what is already in). Requests at or above that are
// all-in for exactly that amount, even when it is short of the floor.
// Negative requests and requests below the floor become zero.
func normalize(available, requested, floor int) (allIn bool, effective int) {
	if available > 0 && requested >= available {
		return true, available
	}
	if requested <= 0 || requested < floor {
		return false, 0
	}
	return false, requested
}

// bettingRound carries the state of a single street
type bettingRound struct {
	street       Street
	maxBet       int
	raisedPlayer int // -1 until somebody raises
	acted        []bool
	bets         []int // Raw submitted bets in action order
}

func newBettingRound(street Street, players []*PlayerState) *bettingRound {
	r := &bettingRound{
		street:       street,
		raisedPlayer: -1,
		acted:        make([]bool, len(players)),
	}
	// Blinds count toward the deal street
	for _, p := range players {
		r.maxBet = max(r.maxBet, p.Committed)
	}
	return r
}

// apply records a raw decision for p and mutates its state. It returns the
// interpreted action; the caller moves Added chips into the pot.
func (r *bettingRound) apply(p *PlayerState, requested int) Action {
	r.bets = append(r.bets, requested)
	r.acted[p.Seat] = true

	action := Action{
		Seat:      p.Seat,
		Street:    r.street,
		Requested: requested,
	}

	allIn, effective := normalize(p.Stack+p.Committed, requested, r.maxBet)
	if effective == 0 {
		if p.Committed < r.maxBet {
			p.InHand = false
			action.Kind = Fold
		} else {
			action.Kind = Check
		}
		action.Amount = p.Committed
		return action
	}

	added := max(0, effective-p.Committed)
	p.commit(added)
	action.Amount = p.Committed
	action.Added = added

	raised := p.Committed > r.maxBet
	if raised {
		r.maxBet = p.Committed
		r.raisedPlayer = p.Seat
		for i := range r.acted {
			r.acted[i] = i == p.Seat
		}
	}

	switch {
	case allIn:
		action.Kind = AllIn
	case raised:
		action.Kind = Raise
	case added == 0:
		action.Kind = Check
	default:
		action.Kind = Call
	}
	return action
}

// settled reports whether no further decision is needed on this street:
// everyone who can still act has acted and matched the running maximum, or
// there is nobody left to bet against.
func (r *bettingRound) settled(players []*PlayerState) bool {
	actionable := 0
	allActed := true
	allMatched := true
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		actionable++
		if !r.acted[p.Seat] {
			allActed = false
		}
		if p.Committed != r.maxBet {
			allMatched = false
		}
	}

	if actionable <= 1 {
		return allMatched
	}
	return allActed && allMatched
}
