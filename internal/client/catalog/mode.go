package catalog

// Mode reports whether the local list reflects a successful fetch.
type Mode int

const (
	// ModeOffline means the last fetch failed or none happened yet; the list
	// may come from the snapshot cache.
	ModeOffline Mode = iota
	ModeOnline
)

func (m Mode) String() string {
	if m == ModeOnline {
		return "online"
	}
	return "offline"
}
