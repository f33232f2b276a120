package reconcile

import (
	"testing"

	"universe-webhook-sync/internal/model"
	"universe-webhook-sync/internal/store"
	apperrors "universe-webhook-sync/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(ticketID, costItemID string) model.TicketRecord {
	return model.TicketRecord{
		TicketID:     ticketID,
		CostItemID:   costItemID,
		TicketStatus: "paid",
	}
}

func snapshotOf(records ...model.TicketRecord) *store.Snapshot {
	snapshot := &store.Snapshot{Headers: model.Columns()}
	for i := range records {
		snapshot.Rows = append(snapshot.Rows, records[i].ToRow())
	}
	return snapshot
}

func TestPlan_Purchase(t *testing.T) {
	records := []model.TicketRecord{record("t-1", "ci-1"), record("t-2", "ci-2")}

	actions, err := Plan(records, model.EventKindPurchase, &store.Snapshot{})

	require.NoError(t, err)
	require.Len(t, actions, 2)
	for i, action := range actions {
		assert.Equal(t, ActionInsert, action.Type)
		assert.Equal(t, records[i].TicketID, action.Record.TicketID)
	}
}

func TestPlan_Update(t *testing.T) {
	t.Run("SingleMatch", func(t *testing.T) {
		snapshot := snapshotOf(record("t-1", "ci-1"), record("t-2", "ci-2"))

		incoming := record("t-2", "ci-99")
		incoming.TicketStatus = "cancelled"

		actions, err := Plan([]model.TicketRecord{incoming}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, ActionUpdate, actions[0].Type)
		assert.Equal(t, 1, actions[0].RowIndex)
		assert.Equal(t, "cancelled", actions[0].Record.TicketStatus)
		// 原列的 cost item id 要保留，不能被進來的蓋掉
		assert.Equal(t, "ci-2", actions[0].Record.CostItemID)
	})

	t.Run("MultipleMatchesAllUpdated", func(t *testing.T) {
		// 歷史壞資料：同一張票已存在兩列
		snapshot := snapshotOf(record("t-1", "ci-a"), record("t-1", "ci-b"), record("t-2", "ci-c"))

		actions, err := Plan([]model.TicketRecord{record("t-1", "ci-new")}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 2)
		assert.Equal(t, 0, actions[0].RowIndex)
		assert.Equal(t, "ci-a", actions[0].Record.CostItemID)
		assert.Equal(t, 1, actions[1].RowIndex)
		assert.Equal(t, "ci-b", actions[1].Record.CostItemID)
	})

	t.Run("NoMatchFallsBackToInsert", func(t *testing.T) {
		snapshot := snapshotOf(record("t-1", "ci-1"))

		actions, err := Plan([]model.TicketRecord{record("t-9", "ci-9")}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, ActionInsert, actions[0].Type)
	})

	t.Run("DuplicateTicketsInBatchCollapsed", func(t *testing.T) {
		snapshot := snapshotOf(record("t-1", "ci-1"))

		first := record("t-1", "ci-x")
		first.TicketStatus = "cancelled"
		second := record("t-1", "ci-y")
		second.TicketStatus = "refunded"

		actions, err := Plan([]model.TicketRecord{first, second}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		// 同一批只認第一筆
		assert.Equal(t, "cancelled", actions[0].Record.TicketStatus)
	})

	t.Run("WhitespaceTolerantMatch", func(t *testing.T) {
		stored := record("t-1", "ci-1")
		stored.TicketID = " t-1 " // 儲存端夾帶空白
		snapshot := snapshotOf(stored)

		actions, err := Plan([]model.TicketRecord{record("t-1", "ci-2")}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, ActionUpdate, actions[0].Type)
	})

	t.Run("MissingTicketIDColumn", func(t *testing.T) {
		snapshot := &store.Snapshot{Headers: []string{"Some Column"}}

		_, err := Plan([]model.TicketRecord{record("t-1", "ci-1")}, model.EventKindUpdate, snapshot)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)
	})

	t.Run("EmptySnapshotInsertsAll", func(t *testing.T) {
		snapshot := &store.Snapshot{Headers: model.Columns()}

		actions, err := Plan([]model.TicketRecord{record("t-1", "ci-1")}, model.EventKindUpdate, snapshot)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, ActionInsert, actions[0].Type)
	})
}
