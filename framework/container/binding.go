package container

// Binding is the handle returned by the Register functions. It stays
// editable until the owning Builder is built.
//
//	container.Register[*Weapon](b, container.Singleton, NewSword).WithTag("primary")
//	container.Register[*Weapon](b, container.Singleton, NewBow).WithTag("secondary")
type Binding struct {
	key   Key
	entry *Entry
}

// WithTag sets the tag the registration answers to.
func (b *Binding) WithTag(tag string) *Binding {
	b.key.Tag = tag
	return b
}

// Key returns the registration key.
func (b *Binding) Key() Key { return b.key }

// Lifetime returns the registration lifetime. Detached handles (returned
// for rejected registrations) report Transient.
func (b *Binding) Lifetime() Lifetime {
	if b.entry == nil {
		return Transient
	}
	return b.entry.lifetime
}
