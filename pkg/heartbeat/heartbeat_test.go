package heartbeat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSocket is a loopback stand-in for a mangos socket: Send pushes
// onto a channel that Recv on the "other side" drains.
type fakeSocket struct {
	out chan []byte
	in  chan []byte
}

func newFakePair() (*fakeSocket, *fakeSocket) {
	a := make(chan []byte, 8)
	b := make(chan []byte, 8)
	return &fakeSocket{out: a, in: b}, &fakeSocket{out: b, in: a}
}

func (s *fakeSocket) Send(data []byte) error {
	s.out <- append([]byte(nil), data...)
	return nil
}

func (s *fakeSocket) Recv() ([]byte, error) {
	select {
	case msg := <-s.in:
		return msg, nil
	case <-time.After(200 * time.Millisecond):
		return nil, context.DeadlineExceeded
	}
}

func (s *fakeSocket) Close() error                          { return nil }
func (s *fakeSocket) SetRecvDeadline(d time.Duration) error { return nil }
func (s *fakeSocket) SetSendDeadline(d time.Duration) error { return nil }
func (s *fakeSocket) Listen(addr string) error              { return nil }
func (s *fakeSocket) Dial(addr string) error                { return nil }
func (s *fakeSocket) SetSurveyTime(d time.Duration) error    { return nil }

type fakeFactory struct {
	surveyor   SurveySocket
	respondent ListenSocket
}

func (f *fakeFactory) NewSurveyorSocket() (SurveySocket, error)   { return f.surveyor, nil }
func (f *fakeFactory) NewRespondentSocket() (ListenSocket, error) { return f.respondent, nil }

type staticSelf struct {
	nodeID int
	role   string
	lsn    string
}

func (s staticSelf) NodeID() int  { return s.nodeID }
func (s staticSelf) Role() string { return s.role }
func (s staticSelf) LSN() string  { return s.lsn }

func TestSurveyorRespondent_RoundTripRecordsSighting(t *testing.T) {
	surveySide, respondentSide := newFakePair()

	surveyor, err := NewSurveyor(&fakeFactory{surveyor: surveySide}, []string{"tcp://127.0.0.1:0"}, 20*time.Millisecond, logging.NewNopLogger())
	require.NoError(t, err)

	respondent, err := NewRespondent(&fakeFactory{respondent: respondentSide}, "tcp://127.0.0.1:0", staticSelf{nodeID: 1, role: "primary", lsn: "0/100"}, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, respondent.Start(ctx))
	require.NoError(t, surveyor.Start(ctx))
	defer respondent.Stop(ctx)
	defer surveyor.Stop(ctx)

	assert.Eventually(t, func() bool {
		_, ok := surveyor.LastSeen(1)
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestSurveyor_LastSeen_UnknownNodeReturnsFalse(t *testing.T) {
	surveySide, _ := newFakePair()
	surveyor, err := NewSurveyor(&fakeFactory{surveyor: surveySide}, nil, time.Second, logging.NewNopLogger())
	require.NoError(t, err)

	_, ok := surveyor.LastSeen(99)
	assert.False(t, ok)
}

func TestRespondent_StartTwiceReturnsErrAlreadyRunning(t *testing.T) {
	_, respondentSide := newFakePair()
	respondent, err := NewRespondent(&fakeFactory{respondent: respondentSide}, "tcp://127.0.0.1:0", staticSelf{nodeID: 1}, logging.NewNopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, respondent.Start(ctx))
	defer respondent.Stop(ctx)

	assert.ErrorIs(t, respondent.Start(ctx), ErrAlreadyRunning)
}

func TestProbe_JSONRoundTrip(t *testing.T) {
	p := Probe{NodeID: 2, Role: "standby", LSN: "0/A000"}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out Probe
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, p, out)
}
