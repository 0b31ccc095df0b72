package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskflow-ai/paper-figures-go/internal/shared/types"
)

var _ types.ConsoleInterface = (*Console)(nil)

func TestTableRender(t *testing.T) {
	c := NewConsole()
	table := c.CreateTable()
	table.AddColumn("Method")
	table.AddColumn("Avg Calls")
	table.AddRow("Manifesto", "2.0")
	table.AddRow("ReAct-4o", 2.6)

	out := table.Render()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Method")
	assert.Contains(t, out, "Manifesto")
	assert.Contains(t, out, "2.6")
}

func TestStatusAndProgressHandles(t *testing.T) {
	c := NewConsole()

	status := c.Status("working...")
	require.NotNil(t, status)
	status.Update("still working...")
	status.Stop()

	progress := c.ProgressWithTotal(3)
	require.NotNil(t, progress)
	progress.Increment()
	progress.Stop()
}
