package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintVersionInfo(t *testing.T) {
	v := &Versions{Version: "1.2.0", GolangVersion: "go1.21.5", BuildTime: "2024-05-02", Formats: []string{"docx", "pdf", "sarif"}}

	var buf bytes.Buffer
	require.NoError(t, printVersionInfo(&buf, v, false))
	assert.Equal(t, "Core Version: v1.2.0\nReport Formats: docx, pdf, sarif\nGo Version: go1.21.5\nBuild Time: 2024-05-02\n", buf.String())

	buf.Reset()
	require.NoError(t, printVersionInfo(&buf, v, true))
	var decoded Versions
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *v, decoded)
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--json"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"formats": [`)
	assert.Contains(t, buf.String(), `"docx"`)
}
