/*
NAME
  locale.go

DESCRIPTION
  locale.go implements the writer's locale guard: it temporarily forces
  LC_ALL=C during XML write and restores the prior value on exit, so
  floating-point fields always use a '.' decimal point regardless of the
  ambient locale. Go's strconv is already locale-independent, so this
  guard has no effect on formatting here, but it is kept as the one
  acceptable process-global mutation, and the single package-level mutex
  serializes it the way the library's single Model mutex serializes
  every other mutation.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package xmlcodec

import (
	"os"
	"sync"
)

var localeMu sync.Mutex

// withCLocale runs fn with LC_ALL forced to "C", restoring the previous
// value (or clearing the variable if it was unset) on return.
func withCLocale(fn func()) {
	localeMu.Lock()
	defer localeMu.Unlock()

	prev, had := os.LookupEnv("LC_ALL")
	os.Setenv("LC_ALL", "C")
	defer func() {
		if had {
			os.Setenv("LC_ALL", prev)
		} else {
			os.Unsetenv("LC_ALL")
		}
	}()
	fn()
}
