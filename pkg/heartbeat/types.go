package heartbeat

import (
	"io"
	"time"
)

// Socket abstracts the underlying NNG transport so the surveyor and
// respondent can be exercised without a live socket in tests.
type Socket interface {
	io.Closer
	Send([]byte) error
	Recv() ([]byte, error)
	SetRecvDeadline(d time.Duration) error
	SetSendDeadline(d time.Duration) error
}

// ListenSocket binds to an address and accepts connections.
type ListenSocket interface {
	Socket
	Listen(addr string) error
}

// DialSocket connects out to a remote address.
type DialSocket interface {
	Socket
	Dial(addr string) error
}

// SurveySocket is a SURVEYOR socket with a configurable survey window.
// It dials out to every known peer address; mangos fans the survey out
// across all dialed connections on a single socket.
type SurveySocket interface {
	DialSocket
	SetSurveyTime(d time.Duration) error
}

// SocketFactory builds the two socket kinds the heartbeat channel needs.
// The production factory wraps go.nanomsg.org/mangos/v3; tests supply an
// in-memory fake.
type SocketFactory interface {
	NewSurveyorSocket() (SurveySocket, error)
	NewRespondentSocket() (ListenSocket, error)
}

// Probe is the wire message exchanged between surveyor and respondent:
// "{node_id, role, lsn}" per SPEC_FULL.md §4.11.
type Probe struct {
	NodeID int    `json:"node_id"`
	Role   string `json:"role"`
	LSN    string `json:"lsn"`
}

// Sighting records when a peer last answered a survey.
type Sighting struct {
	NodeID int
	Role   string
	LSN    string
	SeenAt time.Time
}
