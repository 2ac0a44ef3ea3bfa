package bombmaze

// Status is the session outcome so far.
type Status uint8

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
)

// String returns a display name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s Status) Terminal() bool {
	return s != StatusRunning
}

// EventKind identifies a notification raised during a step.
type EventKind uint8

const (
	EventCollectionProgress EventKind = iota + 1 // Value: floored percentage
	EventExitActivated
	EventLivesChanged // Value: lives remaining
	EventGameOver
	EventGameWon
	EventBombPlaced     // Value: HazardKind
	EventMonsterKilled  // Value: MonsterKind
	EventMonsterCrushed // Value: MonsterKind
)

// String returns a display name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCollectionProgress:
		return "collection_progress"
	case EventExitActivated:
		return "exit_activated"
	case EventLivesChanged:
		return "lives_changed"
	case EventGameOver:
		return "game_over"
	case EventGameWon:
		return "game_won"
	case EventBombPlaced:
		return "bomb_placed"
	case EventMonsterKilled:
		return "monster_killed"
	case EventMonsterCrushed:
		return "monster_crushed"
	default:
		return "unknown"
	}
}

// Event is one notification from a committed step.
type Event struct {
	Kind  EventKind
	Value int
}

// Hooks are optional host callbacks. Nil funcs are skipped.
// Hooks run after a step has committed, in the order the events occurred;
// an aborted step fires none.
type Hooks struct {
	OnExitActivated      func()
	OnLivesChanged       func(lives int)
	OnCollectionProgress func(percent int)
	OnGameOver           func()
	OnGameWon            func()
}

func (h Hooks) dispatch(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventExitActivated:
			if h.OnExitActivated != nil {
				h.OnExitActivated()
			}
		case EventLivesChanged:
			if h.OnLivesChanged != nil {
				h.OnLivesChanged(ev.Value)
			}
		case EventCollectionProgress:
			if h.OnCollectionProgress != nil {
				h.OnCollectionProgress(ev.Value)
			}
		case EventGameOver:
			if h.OnGameOver != nil {
				h.OnGameOver()
			}
		case EventGameWon:
			if h.OnGameWon != nil {
				h.OnGameWon()
			}
		}
	}
}
