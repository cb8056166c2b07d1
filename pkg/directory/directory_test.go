package directory

import (
	"context"
	"testing"

	"github.com/repmgr-go/repmgrd/pkg/dbsession"
	"github.com/repmgr-go/repmgrd/pkg/lsn"
	"github.com/stretchr/testify/assert"
)

// These exercise the error-wrapping paths reachable without a live
// PostgreSQL connection; the query-success paths are covered by
// integration tests run against a real cluster, outside this package's
// unit test scope.

func closedSession() *dbsession.Session {
	s, _ := dbsession.Open(context.Background(), "", false)
	return s
}

func TestFindPrimary_WrapsQueryErrorOnClosedSession(t *testing.T) {
	_, _, err := FindPrimary(context.Background(), closedSession(), "prod")
	assert.ErrorIs(t, err, ErrQuery)
}

func TestEnsureSelfRegistered_WrapsQueryErrorOnClosedSession(t *testing.T) {
	err := EnsureSelfRegistered(context.Background(), closedSession(), NodeIdentity{NodeID: 1, ClusterName: "prod"})
	assert.ErrorIs(t, err, ErrQuery)
}

func TestListPeerStandbys_WrapsQueryErrorOnClosedSession(t *testing.T) {
	_, err := ListPeerStandbys(context.Background(), closedSession(), "prod", 1)
	assert.ErrorIs(t, err, ErrQuery)
}

func TestPublishStandbyLocation_WrapsQueryErrorOnClosedSession(t *testing.T) {
	loc, _ := lsn.Parse("0/100")
	err := PublishStandbyLocation(context.Background(), closedSession(), loc)
	assert.ErrorIs(t, err, ErrQuery)
}

func TestReadLastStandbyLocation_WrapsQueryErrorOnClosedSession(t *testing.T) {
	_, err := ReadLastStandbyLocation(context.Background(), closedSession())
	assert.ErrorIs(t, err, ErrQuery)
}
