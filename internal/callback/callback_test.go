package callback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/ui"
)

func TestFightSummarySequence(t *testing.T) {
	ui.NoColor(true)

	sub := Init(16)
	sub.Insert(1, "", "Fight")
	Send(Message{Code: MsgTaskChainStart, TaskID: 1})
	Send(Message{Code: MsgSubTaskExtraInfo, TaskID: 1, Payload: []byte(`{
		"what": "StageDrops",
		"details": {"drops": [{"name": "A", "count": 1}]}
	}`)})
	Send(Message{Code: MsgSubTaskExtraInfo, TaskID: 1, Payload: []byte(`{
		"what": "StageDrops",
		"details": {"drops": [{"name": "A", "count": 1}, {"name": "C", "count": 3}]}
	}`)})
	Send(Message{Code: MsgTaskChainCompleted, TaskID: 1})
	Close()

	if _, err := sub.TryUpdate(); err != nil {
		t.Fatalf("TryUpdate: %v", err)
	}

	snap := sub.Snapshot()
	assert.True(t, strings.Contains(snap, "A × 2"), "snapshot missing A drop: %s", snap)
	assert.True(t, strings.Contains(snap, "C × 3"), "snapshot missing C drop: %s", snap)
	assert.True(t, strings.Contains(snap, "Completed"), "snapshot missing terminal state: %s", snap)
}

func TestUnfinishedTaskOnClose(t *testing.T) {
	sub := Init(8)
	sub.Insert(7, "", "Fight")
	Send(Message{Code: MsgTaskChainStart, TaskID: 7})
	Close()

	if _, err := sub.TryUpdate(); err != nil {
		t.Fatalf("TryUpdate: %v", err)
	}
	assert.Contains(t, sub.Snapshot(), "Unfinished")
}

func TestErrorObservedStickyAcrossMessages(t *testing.T) {
	sub := Init(8)
	sub.Insert(3, "", "Fight")
	assert.False(t, ErrorObserved())
	Send(Message{Code: MsgTaskChainStart, TaskID: 3})
	Send(Message{Code: MsgTaskChainError, TaskID: 3})
	Close()
	_, _ = sub.TryUpdate()
	assert.True(t, ErrorObserved())
}

func TestInsertIsIdempotentForKnownID(t *testing.T) {
	sub := Init(4)
	sub.Insert(1, "first", "Fight")
	sub.Insert(1, "second", "Infrast")
	Close()
	_, _ = sub.TryUpdate()
	assert.Contains(t, sub.Snapshot(), "first")
	assert.NotContains(t, sub.Snapshot(), "second")
}
