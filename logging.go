package fleettrack

import (
	"log"
	"os"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
)

// InitLogging configures the standard logger. With quiet set, engine messages
// are dropped and only service-level lines are written.
func InitLogging(quiet bool) {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if quiet {
		tracking.SetLogger(nil)
	} else {
		tracking.SetLogger(log.Printf)
	}
}
