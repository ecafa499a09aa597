package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/joshharrison/critpath/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(config.Default())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const simpleCSV = `id,name,duration,predecessors
A,Start,3,
B,Design,2,A
C,Procure,4,A
D,Develop,2,B;C
E,Test,3,D
`

func TestAnalyze_SampleJSON(t *testing.T) {
	out, err := run(t, "analyze", "--sample", "simple", "--json")
	require.NoError(t, err)

	assert.Equal(t, 12.0, gjson.Get(out, "project_duration").Float())
	assert.Equal(t, "sample:simple", gjson.Get(out, "source").String())
	assert.Equal(t, int64(6), gjson.Get(out, "aoa_network.events.#").Int())
}

func TestAnalyze_TextReport(t *testing.T) {
	path := writeFile(t, "simple.csv", simpleCSV)
	out, err := run(t, "analyze", path, "-q", "--unit", "weeks")
	require.NoError(t, err)
	assert.Contains(t, out, "12 weeks")
	assert.Contains(t, out, "A → C → D → E")
}

func TestAnalyze_MultipleFiles(t *testing.T) {
	a := writeFile(t, "a.csv", simpleCSV)
	b := writeFile(t, "b.json", `[{"id": "X", "duration": 4}, {"id": "Y", "duration": 1, "predecessors": ["X"]}]`)

	out, err := run(t, "analyze", a, b, "--json", "--workers", "2")
	require.NoError(t, err)

	docs := gjson.Parse(out).Array()
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].Get("source").String())
	assert.Equal(t, 12.0, docs[0].Get("project_duration").Float())
	assert.Equal(t, 5.0, docs[1].Get("project_duration").Float())
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, err := run(t, "analyze", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyze_NoInput(t *testing.T) {
	_, err := run(t, "analyze")
	assert.ErrorContains(t, err, "no input files")
}

func TestValidate_Cycle(t *testing.T) {
	path := writeFile(t, "loop.csv", "id,name,duration,predecessors\nA,A,1,B\nB,B,1,A\n")
	out, err := run(t, "validate", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidNetwork))
	assert.Contains(t, out, "has 1 error(s)")
	assert.Contains(t, out, "Cycle detected in the network")
}

func TestValidate_JSON(t *testing.T) {
	out, err := run(t, "validate", "--sample", "project", "--json")
	require.NoError(t, err)
	assert.True(t, gjson.Get(out, "0.valid").Bool())
	assert.Equal(t, int64(0), gjson.Get(out, "0.errors.#").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "0.warnings.#").Int())
}

func TestAOA_JSON(t *testing.T) {
	out, err := run(t, "aoa", "--sample", "project", "--json")
	require.NoError(t, err)
	assert.Equal(t, int64(9), gjson.Get(out, "events.#").Int())
	assert.Equal(t, int64(10), gjson.Get(out, "activities.#").Int())
	assert.Equal(t, int64(1), gjson.Get(out, "start_event").Int())
}

func TestExport_Activities(t *testing.T) {
	out, err := run(t, "export", "--sample", "simple", "--format", "activities")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "id,name,duration,predecessors", lines[0])
	assert.Equal(t, "D,Develop,2,B;C", lines[4])
}

func TestExport_ResultsToFile(t *testing.T) {
	in := writeFile(t, "simple.csv", simpleCSV)
	dest := filepath.Join(t.TempDir(), "results.csv")

	_, err := run(t, "export", in, "-o", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id,name,duration,predecessors,es,ef,ls,lf,total_float,free_float,critical\n")
	assert.Contains(t, string(data), "B,Design,2,A,3,5,5,7,2,2,false")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := run(t, "export", "--sample", "simple", "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestPERT_SampleJSON(t *testing.T) {
	out, err := run(t, "pert", "--sample", "pert", "--json")
	require.NoError(t, err)
	assert.Equal(t, 10.0, gjson.Get(out, "project_duration").Float())
	assert.Equal(t, int64(5), gjson.Get(out, "pert_activities.#").Int())
}

func TestPERT_UnknownSample(t *testing.T) {
	_, err := run(t, "pert", "--sample", "simple")
	assert.ErrorContains(t, err, `unknown sample "simple"`)
}

func TestGlobalFlagValidation(t *testing.T) {
	_, err := run(t, "analyze", "--sample", "simple", "--unit", "months")
	assert.ErrorContains(t, err, "--unit must be days or weeks")

	_, err = run(t, "analyze", "--sample", "simple", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
