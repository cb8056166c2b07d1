package heartbeat

import (
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/respondent"
	"go.nanomsg.org/mangos/v3/protocol/surveyor"

	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// nngSocket wraps a mangos.Socket to satisfy Socket.
type nngSocket struct {
	sock mangos.Socket
}

func (s *nngSocket) Send(data []byte) error { return s.sock.Send(data) }
func (s *nngSocket) Recv() ([]byte, error)  { return s.sock.Recv() }
func (s *nngSocket) Close() error           { return s.sock.Close() }

func (s *nngSocket) SetRecvDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

func (s *nngSocket) SetSendDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionSendDeadline, d)
}

func (s *nngSocket) Listen(addr string) error { return s.sock.Listen(addr) }
func (s *nngSocket) Dial(addr string) error   { return s.sock.Dial(addr) }

type nngSurveySocket struct {
	nngSocket
}

func (s *nngSurveySocket) SetSurveyTime(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionSurveyTime, d)
}

// NNGSocketFactory creates real mangos sockets for the surveyor and
// respondent sides of the heartbeat channel.
type NNGSocketFactory struct{}

// NewNNGSocketFactory returns a factory backed by go.nanomsg.org/mangos/v3.
func NewNNGSocketFactory() *NNGSocketFactory { return &NNGSocketFactory{} }

func (f *NNGSocketFactory) NewSurveyorSocket() (SurveySocket, error) {
	sock, err := surveyor.NewSocket()
	if err != nil {
		return nil, err
	}
	return &nngSurveySocket{nngSocket{sock: sock}}, nil
}

func (f *NNGSocketFactory) NewRespondentSocket() (ListenSocket, error) {
	sock, err := respondent.NewSocket()
	if err != nil {
		return nil, err
	}
	return &nngSocket{sock: sock}, nil
}

var _ SocketFactory = (*NNGSocketFactory)(nil)
