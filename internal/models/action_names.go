package models

import (
	"sort"
	"sync"
)

// ActionNameMap maps action start times to action names for one virtual user.
// The reader of a user directory inserts while scanning regular timer files;
// parsers of client-performance chunks look names up concurrently.
type ActionNameMap struct {
	mu    sync.RWMutex
	times []int64
	names []string
}

func NewActionNameMap() *ActionNameMap {
	return &ActionNameMap{}
}

// Put records that action name started at time t. Timestamps normally arrive in
// increasing order, which keeps inserts at the tail.
func (m *ActionNameMap) Put(t int64, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.times)
	if n == 0 || m.times[n-1] < t {
		m.times = append(m.times, t)
		m.names = append(m.names, name)
		return
	}

	i := sort.Search(n, func(i int) bool { return m.times[i] >= t })
	if i < n && m.times[i] == t {
		m.names[i] = name
		return
	}
	m.times = append(m.times, 0)
	m.names = append(m.names, "")
	copy(m.times[i+1:], m.times[i:])
	copy(m.names[i+1:], m.names[i:])
	m.times[i] = t
	m.names[i] = name
}

// Floor returns the name of the latest action started at or before t.
func (m *ActionNameMap) Floor(t int64) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := sort.Search(len(m.times), func(i int) bool { return m.times[i] > t })
	if i == 0 {
		return "", false
	}
	return m.names[i-1], true
}

func (m *ActionNameMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.times)
}
