package heartbeat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/repmgr-go/repmgrd/pkg/logging"
)

// Surveyor polls every known peer once per interval and records the
// last time each node id answered. It is the sole reader of the wire;
// the reconnect ladder only ever reads LastSeen, never the socket.
type Surveyor struct {
	socket     SurveySocket
	peers      []string
	interval   time.Duration
	surveyTime time.Duration
	log        logging.Logger

	mu      sync.RWMutex
	seen    map[int]Sighting
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSurveyor constructs a Surveyor that will dial every address in
// peers once Started.
func NewSurveyor(factory SocketFactory, peers []string, interval time.Duration, log logging.Logger) (*Surveyor, error) {
	socket, err := factory.NewSurveyorSocket()
	if err != nil {
		return nil, err
	}
	return &Surveyor{
		socket:     socket,
		peers:      peers,
		interval:   interval,
		surveyTime: 2 * time.Second,
		log:        log,
		seen:       make(map[int]Sighting),
	}, nil
}

// Name satisfies orchestrator.Component.
func (s *Surveyor) Name() string { return "heartbeat-surveyor" }

// Start dials every peer address and begins the survey loop.
func (s *Surveyor) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	for _, addr := range s.peers {
		if err := s.socket.Dial(addr); err != nil {
			s.log.Warn("heartbeat: failed to dial peer", logging.String("addr", addr), logging.Error(err))
		}
	}
	if err := s.socket.SetSurveyTime(s.surveyTime); err != nil {
		s.socket.Close()
		return err
	}

	s.stopCh = make(chan struct{})
	s.running = true
	s.wg.Add(1)
	go s.loop()

	s.log.Info("heartbeat: surveyor started", logging.Int("peers", len(s.peers)))
	return nil
}

// Stop ends the survey loop and closes the socket.
func (s *Surveyor) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	close(s.stopCh)
	s.running = false
	s.wg.Wait()
	return s.socket.Close()
}

// LastSeen implements supervisor.LastSeen: the primary supervisor
// consults this purely for disagreement logging, never for its
// promotion decision (SPEC_FULL.md §4.11).
func (s *Surveyor) LastSeen(nodeID int) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sighting, ok := s.seen[nodeID]
	if !ok {
		return time.Time{}, false
	}
	return sighting.SeenAt, true
}

func (s *Surveyor) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.conductSurvey()
		}
	}
}

func (s *Surveyor) conductSurvey() {
	if err := s.socket.Send(nil); err != nil {
		s.log.Warn("heartbeat: failed to send survey", logging.Error(err))
		return
	}

	now := time.Now()
	count := 0
	for {
		msg, err := s.socket.Recv()
		if err != nil {
			break
		}

		var probe Probe
		if err := json.Unmarshal(msg, &probe); err != nil {
			s.log.Warn("heartbeat: failed to parse probe reply", logging.Error(err))
			continue
		}

		s.mu.Lock()
		s.seen[probe.NodeID] = Sighting{NodeID: probe.NodeID, Role: probe.Role, LSN: probe.LSN, SeenAt: now}
		s.mu.Unlock()
		count++
	}

	if count > 0 {
		s.log.Debug("heartbeat: survey complete", logging.Int("responses", count))
	}
}
