package cytoscape

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameSUIDRoundTrip(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefNames("C", "A"))
	require.NoError(t, err)
	require.Len(t, suids, 2)

	names, err := c.NodeSUIDsToNames(ctx, ref, suids)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, names)
}

func TestEdgeTranslation(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	suids, err := c.EdgeNamesToSUIDs(ctx, ref, RefNames("B (activates) C"))
	require.NoError(t, err)
	require.Len(t, suids, 1)

	names, err := c.EdgeSUIDsToNames(ctx, ref, suids)
	require.NoError(t, err)
	assert.Equal(t, []string{"B (activates) C"}, names)
}

func TestSUIDListPassesThroughWithLivenessCheck(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	live := net.Nodes[0].SUID
	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefSUIDs(live))
	require.NoError(t, err)
	assert.Equal(t, []int64{live}, suids)

	_, err = c.NodeNamesToSUIDs(ctx, ref, RefSUIDs(99999))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDuplicateNameTranslation(t *testing.T) {
	c, srv := newTestClient(t)
	net := srv.AddNetwork("dups", []string{"X", "dup", "dup"}, nil)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	// default mode: one representative SUID, repeated
	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefNames("dup", "dup"))
	require.NoError(t, err)
	require.Len(t, suids, 2)
	assert.Equal(t, suids[0], suids[1])
	assert.Equal(t, net.Nodes[1].SUID, suids[0], "first occurrence in table order")

	// non-unique mode: distinct SUIDs per occurrence
	suids, err = c.NodeNamesToSUIDs(ctx, ref, RefNames("dup", "dup"), NonUnique())
	require.NoError(t, err)
	assert.Equal(t, []int64{net.Nodes[1].SUID, net.Nodes[2].SUID}, suids)

	// asking more often than the name occurs is an error
	_, err = c.NodeNamesToSUIDs(ctx, ref, RefNames("dup", "dup", "dup"), NonUnique())
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestRefListClassification(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)
	ctx := context.Background()
	ref := NetworkBySUID(net.SUID)

	a, b := net.Nodes[0].SUID, net.Nodes[1].SUID

	// all entries are live SUIDs: taken as SUIDs
	suids, err := c.NodeNamesToSUIDs(ctx, ref, RefList(fmt.Sprintf("%d, %d", a, b)))
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b}, suids)

	// all entries are names: taken as names
	suids, err = c.NodeNamesToSUIDs(ctx, ref, RefList("A,B"))
	require.NoError(t, err)
	assert.Equal(t, []int64{a, b}, suids)

	// a mix of live SUIDs and names is malformed
	_, err = c.NodeNamesToSUIDs(ctx, ref, RefList(fmt.Sprintf("%d,B", a)))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUnknownNameTranslation(t *testing.T) {
	c, srv := newTestClient(t)
	net := seedNetwork(srv)

	_, err := c.NodeNamesToSUIDs(context.Background(), NetworkBySUID(net.SUID), RefNames("missing"))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}
