package mutation

import "time"

const (
	timeoutWait = time.Second
	tick        = 5 * time.Millisecond
)
