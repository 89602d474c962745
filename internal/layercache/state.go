package layercache

// State is where a layer sits in its lifecycle on the map.
type State int

const (
	// Idle layers have never been fetched, or were evicted or failed to load.
	Idle State = iota
	// Loading layers have a fetch and decode in flight.
	Loading
	// CachedHidden layers hold a decoded handle that is not on the map.
	CachedHidden
	// CachedVisible layers hold a decoded handle that is on the map.
	CachedVisible
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case CachedHidden:
		return "hidden"
	case CachedVisible:
		return "visible"
	default:
		return "unknown"
	}
}
