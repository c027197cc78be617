package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-inject/framework/host"
)

type ticker struct {
	name string
	log  *[]string
}

func (t *ticker) Tick()      { *t.log = append(*t.log, t.name) }
func (t *ticker) LateTick()  { *t.log = append(*t.log, "late:"+t.name) }
func (t *ticker) FixedTick() { *t.log = append(*t.log, "fixed:"+t.name) }

func TestHandler_InvokesInOrder(t *testing.T) {
	var log []string
	h := host.NewTickHandler()
	h.AddSubscriber(&ticker{"a", &log})
	h.AddSubscriber(&ticker{"b", &log})

	h.Invoke()
	h.Invoke()
	assert.Equal(t, []string{"a", "b", "a", "b"}, log)
}

func TestHandler_SetSemantics(t *testing.T) {
	var log []string
	h := host.NewTickHandler()
	a := &ticker{"a", &log}
	h.AddSubscriber(a)
	h.AddSubscriber(a)
	h.AddSubscriber(nil)

	assert.Equal(t, 1, h.Len())
	h.Invoke()
	assert.Equal(t, []string{"a"}, log)
}

func TestHandler_GenericCallback(t *testing.T) {
	total := 0
	h := host.NewHandler(func(n int) { total += n })
	h.AddSubscriber(2)
	h.AddSubscriber(3)
	h.AddSubscriber(3)

	h.Invoke()
	assert.Equal(t, 5, total)
}

// tagged is a comparable struct type whose interface field may hold an
// uncomparable value.
type tagged struct{ meta any }

func (tagged) Tick() {}

func TestHandler_UncomparableValueInComparableType(t *testing.T) {
	h := host.NewTickHandler()

	assert.NotPanics(t, func() {
		h.AddSubscriber(tagged{meta: []string{"a"}})
		h.AddSubscriber(tagged{meta: map[string]int{}})
	})
	assert.Equal(t, 2, h.Len())

	h.AddSubscriber(tagged{meta: "x"})
	h.AddSubscriber(tagged{meta: "x"})
	assert.Equal(t, 3, h.Len())
}
