package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByTarget(t *testing.T) {
	t.Run("AllBypassesFilter", func(t *testing.T) {
		payload := basePayload()
		payload.Rates[1].Name = "Gift Bag"

		records := FilterByTarget(Normalize(payload), TargetAll)

		// ALL 不過濾，改了名字也照樣輸出
		require.Len(t, records, 1)
		assert.Equal(t, "Gift Bag", records[0].AddOnName)
	})

	t.Run("MatchingAddOnKept", func(t *testing.T) {
		records := FilterByTarget(Normalize(basePayload()), "Memento Ticket")

		require.Len(t, records, 1)
		assert.Equal(t, "Memento Ticket", records[0].AddOnName)
	})

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		records := FilterByTarget(Normalize(basePayload()), "memento")

		assert.Len(t, records, 1)
	})

	t.Run("NonMatchingDropped", func(t *testing.T) {
		records := FilterByTarget(Normalize(basePayload()), "VIP Parking")

		assert.Empty(t, records)
	})

	t.Run("PrimaryNameDoesNotCount", func(t *testing.T) {
		payload := basePayload()
		// 主票名稱含目標字串，但主票不是 add-on，不算命中
		payload.Rates[0].Name = "Memento Ticket Admission"
		payload.Rates[1].Name = "Gift Bag"

		records := FilterByTarget(Normalize(payload), "Memento Ticket")

		assert.Empty(t, records)
	})

	t.Run("EmptyTargetBehavesLikeAll", func(t *testing.T) {
		records := FilterByTarget(Normalize(basePayload()), "")

		assert.Len(t, records, 1)
	})
}
