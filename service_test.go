package mapscript

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestService_RunScript(t *testing.T) {
	out := &bytes.Buffer{}
	srv := New(
		WithScriptBaseURL("testdata"),
		WithPrinterWriter(out))

	report, sess, err := srv.Runtime().RunScript(context.Background(), "render")
	assert.Nil(t, err)
	assert.Equal(t, 4, len(report.Outcomes))
	assert.Equal(t, -1, report.FailedAt)

	value, ok := sess.Setting("map.coastline.mode")
	assert.True(t, ok)
	assert.Equal(t, "ignore", value)
	assert.Equal(t, 1, len(sess.Layers()))
	assert.Equal(t, "render configured\n", out.String())
}

func TestService_RunLongScript(t *testing.T) {
	// a default service wires a memory event queue with no listener; a run
	// longer than the queue buffer must still complete
	srv := New()
	var src bytes.Buffer
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&src, "set-setting name=tile.%03d value=%d\n", i, i)
	}
	script, err := srv.Runtime().DecodeScript(src.Bytes())
	assert.Nil(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	sess := srv.Runtime().NewSession()
	report, err := srv.Runtime().Run(ctx, script, sess)
	assert.Nil(t, err)
	assert.Equal(t, -1, report.FailedAt)
	assert.Equal(t, 150, len(report.Outcomes))
	assert.Equal(t, 150, len(sess.Settings()))
}

func TestConfig_Validate(t *testing.T) {
	assert.Nil(t, DefaultConfig().Validate())
	invalid := &Config{Events: EventsConfig{Vendor: "fs"}}
	assert.NotNil(t, invalid.Validate())
}
