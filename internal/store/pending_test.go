package store

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingWrites_FlushCommitsLastValue(t *testing.T) {
	p := NewPendingWrites(time.Hour)
	var mu sync.Mutex
	var committed []string

	for _, v := range []string{"A", "Ad", "Ada"} {
		v := v
		p.Schedule("name", func() {
			mu.Lock()
			defer mu.Unlock()
			committed = append(committed, v)
		})
	}
	assert.Equal(t, 1, p.Len())

	p.Flush()

	assert.Equal(t, []string{"Ada"}, committed)
	assert.Equal(t, 0, p.Len())
}

func TestPendingWrites_FlushKeepsSchedulingOrder(t *testing.T) {
	p := NewPendingWrites(time.Hour)
	var order []string

	p.Schedule("b", func() { order = append(order, "b") })
	p.Schedule("a", func() { order = append(order, "a") })
	p.Flush()

	assert.Equal(t, []string{"b", "a"}, order)
}

func TestPendingWrites_CancelDropsWrites(t *testing.T) {
	p := NewPendingWrites(10 * time.Millisecond)
	var calls atomic.Int32

	p.Schedule("about", func() { calls.Add(1) })
	p.Cancel()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, p.Len())
}

func TestPendingWrites_FiresAfterDelay(t *testing.T) {
	p := NewPendingWrites(5 * time.Millisecond)
	var last atomic.Value

	p.Schedule("title", func() { last.Store("first") })
	p.Schedule("title", func() { last.Store("second") })

	require.Eventually(t, func() bool {
		v, _ := last.Load().(string)
		return v == "second" && p.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestPendingWrites_DrivesStore(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddCV("A", nil)
	p := NewPendingWrites(time.Hour)

	for _, v := range []string{"Eng", "Engineer"} {
		v := v
		p.Schedule("title", func() { _ = s.UpdatePersonalInfo(PersonalInfoPatch{Title: &v}) })
	}
	assert.Equal(t, "", s.View().PersonalInfo.Title)

	p.Flush()
	assert.Equal(t, "Engineer", s.View().PersonalInfo.Title)
}
