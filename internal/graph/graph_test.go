package graph

import (
	"reflect"
	"testing"

	"github.com/SamyaDeb/AlgoMint/internal/model"
)

func TestBuildCallGraphDropsUnknownCallees(t *testing.T) {
	t.Parallel()
	members := []model.Method{
		{Name: "transfer", CallsMethods: []string{"check_balance", "log", "transfer"}},
		{Name: "check_balance"},
	}

	edges := BuildCallGraph(members)
	want := []model.CallEdge{
		{From: "transfer", To: "check_balance"},
		{From: "transfer", To: "transfer"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %+v", edges)
	}
}

func TestBuildCallGraphEmpty(t *testing.T) {
	t.Parallel()
	edges := BuildCallGraph(nil)
	if edges == nil || len(edges) != 0 {
		t.Errorf("edges = %#v, want empty non-nil slice", edges)
	}
}

func TestBuildStorageAccessMap(t *testing.T) {
	t.Parallel()
	members := []model.Method{
		{Name: "increment", ReadsState: []string{"count"}, WritesState: []string{"count", "ghost"}},
		{Name: "get_count", ReadsState: []string{"count"}},
	}

	edges := BuildStorageAccessMap(members, []string{"count"})
	want := []model.StorageAccess{
		{Method: "increment", Variable: "count", AccessType: model.AccessRead},
		{Method: "increment", Variable: "count", AccessType: model.AccessWrite},
		{Method: "get_count", Variable: "count", AccessType: model.AccessRead},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %+v", edges)
	}
}

func TestBuildInnerTxnMap(t *testing.T) {
	t.Parallel()
	members := []model.Method{
		{Name: "payout", InnerTxns: []string{"Payment", "AssetTransfer"}},
		{Name: "noop"},
	}

	edges := BuildInnerTxnMap(members)
	want := []model.InnerTxn{
		{Method: "payout", TxnType: "Payment"},
		{Method: "payout", TxnType: "AssetTransfer"},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %+v", edges)
	}
}

func TestBuildEventsGroupsEmitters(t *testing.T) {
	t.Parallel()
	members := []model.Method{
		{Name: "transfer", EmitsEvents: []string{"Transfer"}},
		{Name: "mint", EmitsEvents: []string{"Transfer", "Mint"}},
	}

	events := BuildEvents(members)
	want := []model.Event{
		{Name: "Transfer", EmittedBy: []string{"transfer", "mint"}},
		{Name: "Mint", EmittedBy: []string{"mint"}},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %+v", events)
	}
}
