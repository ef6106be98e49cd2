package friendship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInitiate_Priority(t *testing.T) {
	e := func(from, to string, kind Kind) Edge { return Edge{From: from, To: to, Kind: kind} }

	tests := []struct {
		name      string
		initiator string
		recipient string
		edges     []Edge
		want      Reason
	}{
		{"no edges", "a", "b", nil, ""},
		{"self", "a", "a", nil, ReasonSelfRequest},
		{"self wins over everything", "a", "a", []Edge{e("a", "a", KindBlocked)}, ReasonSelfRequest},
		{"you blocked them", "a", "b", []Edge{e("a", "b", KindBlocked)}, ReasonBlockedByYou},
		{"they blocked you", "a", "b", []Edge{e("b", "a", KindBlocked)}, ReasonBlockedByThem},
		{"blocked before pending", "a", "b", []Edge{e("a", "b", KindPending), e("b", "a", KindBlocked)}, ReasonBlockedByThem},
		{"already sent", "a", "b", []Edge{e("a", "b", KindPending)}, ReasonRequestSent},
		{"already received", "a", "b", []Edge{e("b", "a", KindPending)}, ReasonRequestReceived},
		{"pending before accepted", "a", "b", []Edge{e("b", "a", KindAccepted), e("a", "b", KindPending)}, ReasonRequestSent},
		{"friends outgoing", "a", "b", []Edge{e("a", "b", KindAccepted)}, ReasonAlreadyFriends},
		{"friends incoming", "a", "b", []Edge{e("b", "a", KindAccepted)}, ReasonAlreadyFriends},
		{"declined does not block", "a", "b", []Edge{e("b", "a", KindDeclined)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkInitiate(tt.initiator, tt.recipient, tt.edges))
		})
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"accepted", KindAccepted, true},
		{"ACCEPTED", KindAccepted, true},
		{"Declined", KindDeclined, true},
		{" blocked ", KindBlocked, true},
		{"pending", "", false},
		{"accept", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecision(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReason_Message(t *testing.T) {
	assert.Equal(t, "This user has blocked you", ReasonBlockedByThem.Message())
	assert.Equal(t, "mystery", Reason("mystery").Message())
}

func TestKind_Valid(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, Kind("FOLLOWS").Valid())
	assert.Equal(t, "accepted", KindAccepted.Label())
}
