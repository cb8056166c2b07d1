package heartbeat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/logging"
)

// SelfProvider supplies the fields a respondent answers each probe with.
// The primary daemon implements this by reading its own node identity
// and current LSN; it is never asked to resolve anyone else's state.
type SelfProvider interface {
	NodeID() int
	Role() string
	LSN() string
}

// Respondent answers heartbeat probes while this node is primary. It is
// purely observational: SPEC_FULL.md §4.11 notes it never fences a
// deposed primary, it only feeds the surveyor's last-seen table.
type Respondent struct {
	socket      ListenSocket
	addr        string
	self        SelfProvider
	recvTimeout time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
	log     logging.Logger
}

// NewRespondent constructs a Respondent bound to addr once Started.
func NewRespondent(factory SocketFactory, addr string, self SelfProvider, log logging.Logger) (*Respondent, error) {
	socket, err := factory.NewRespondentSocket()
	if err != nil {
		return nil, err
	}
	return &Respondent{
		socket:      socket,
		addr:        addr,
		self:        self,
		recvTimeout: time.Second,
		log:         log,
	}, nil
}

// Name satisfies orchestrator.Component.
func (r *Respondent) Name() string { return "heartbeat-respondent" }

// Start binds the respondent socket and begins answering probes.
func (r *Respondent) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrAlreadyRunning
	}
	if err := r.socket.Listen(r.addr); err != nil {
		return err
	}
	if err := r.socket.SetRecvDeadline(r.recvTimeout); err != nil {
		r.socket.Close()
		return err
	}

	r.stopCh = make(chan struct{})
	r.running = true
	r.wg.Add(1)
	go r.loop()

	r.log.Info("heartbeat: respondent listening", logging.String("addr", r.addr))
	return nil
}

// Stop closes the respondent socket and waits for the loop to exit.
func (r *Respondent) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	close(r.stopCh)
	r.running = false
	r.wg.Wait()
	return r.socket.Close()
}

func (r *Respondent) loop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		if _, err := r.socket.Recv(); err != nil {
			continue
		}

		reply := Probe{NodeID: r.self.NodeID(), Role: r.self.Role(), LSN: r.self.LSN()}
		data, err := json.Marshal(reply)
		if err != nil {
			r.log.Warn("heartbeat: failed to marshal probe reply", logging.Error(err))
			continue
		}
		if err := r.socket.Send(data); err != nil {
			r.log.Warn("heartbeat: failed to send probe reply", logging.Error(err))
		}
	}
}
