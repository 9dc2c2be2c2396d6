package relay

import (
	"regexp"
	"strconv"
)

// The "ID: <digits>" line embedded in forwarded notifications is the contract
// that lets a plain-text admin reply find its way back to the originating
// user. Parsing is isolated here so the marker can be swapped for a
// structured side channel without touching the state machine.
var boundIdentityPattern = regexp.MustCompile(`ID: (\d+)`)

// resolveBoundIdentity recovers the user identity embedded in a forwarded
// notification text.
func resolveBoundIdentity(notificationText string) (int64, bool) {
	match := boundIdentityPattern.FindStringSubmatch(notificationText)

	if match == nil {
		return 0, false
	}

	id, err := strconv.ParseInt(match[1], 10, 64)

	if err != nil {
		return 0, false
	}

	return id, true
}
