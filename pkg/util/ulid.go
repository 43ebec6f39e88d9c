package util

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

var (
	ulidMutex   sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// NewULID returns a new lexically sortable unique id
func NewULID() ulid.ULID {
	ulidMutex.Lock()
	defer ulidMutex.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy)
}
