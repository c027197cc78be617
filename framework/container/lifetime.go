package container

// Lifetime controls whether an entry caches its instance.
type Lifetime int

const (
	// Transient entries call their factory on every resolution.
	Transient Lifetime = iota

	// Singleton entries call their factory once and hand the cached
	// instance to every later resolution of the same entry.
	Singleton
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}
