package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var updates []Progress
	tracker := &Progress{RunID: "run-1", Script: "render"}
	tracker.OnChange(func(p Progress) {
		updates = append(updates, p)
	})

	tracker.Update(Delta{Total: 3})
	tracker.Update(Delta{Completed: 1})
	tracker.Update(Delta{Completed: 1})
	tracker.Update(Delta{Failed: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, 3, snapshot.TotalDirectives)
	assert.Equal(t, 2, snapshot.CompletedDirectives)
	assert.Equal(t, 1, snapshot.FailedDirectives)
	assert.Equal(t, 4, len(updates))
	assert.Equal(t, "render", updates[0].Script)
}

func TestProgress_nilSafe(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Total: 1})
	tracker.OnChange(func(Progress) {})
	assert.Equal(t, Progress{}, tracker.Snapshot())
}

func TestContextCarriage(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))
	tracker := &Progress{RunID: "run-2"}
	ctx := WithProgress(context.Background(), tracker)
	assert.Same(t, tracker, FromContext(ctx))
}
