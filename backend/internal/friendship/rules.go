package friendship

// checkInitiate evaluates the existing edges between initiator and recipient
// and returns the first rule that forbids a new request, or "" if allowed.
// Priority: self, blocked, pending, accepted. Declined edges never block.
func checkInitiate(initiator, recipient string, edges []Edge) Reason {
	if initiator == recipient {
		return ReasonSelfRequest
	}

	has := func(kind Kind, from, to string) bool {
		_, ok := findEdge(edges, kind, from, to)
		return ok
	}

	switch {
	case has(KindBlocked, initiator, recipient):
		return ReasonBlockedByYou
	case has(KindBlocked, recipient, initiator):
		return ReasonBlockedByThem
	case has(KindPending, initiator, recipient):
		return ReasonRequestSent
	case has(KindPending, recipient, initiator):
		return ReasonRequestReceived
	case has(KindAccepted, initiator, recipient), has(KindAccepted, recipient, initiator):
		return ReasonAlreadyFriends
	}
	return ""
}

// findEdge returns the edge of the given kind from -> to, if present.
func findEdge(edges []Edge, kind Kind, from, to string) (Edge, bool) {
	for _, e := range edges {
		if e.Kind == kind && e.From == from && e.To == to {
			return e, true
		}
	}
	return Edge{}, false
}

// ofKind filters edges down to the given kind, in either direction.
func ofKind(edges []Edge, kind Kind) []Edge {
	var out []Edge
	for _, e := range edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
