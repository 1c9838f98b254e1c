package jsspio

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jssp/internal/jssp"
)

const ft06Instance = "6\t6\n" +
	"2\t1\t0\t3\t1\t6\t3\t7\t5\t3\t4\t6\n" +
	"1\t8\t2\t5\t4\t10\t5\t10\t0\t10\t3\t4\n" +
	"2\t5\t3\t4\t5\t8\t0\t9\t1\t1\t4\t7\n" +
	"1\t5\t0\t5\t2\t5\t3\t3\t4\t8\t5\t9\n" +
	"2\t9\t1\t3\t4\t5\t5\t4\t0\t3\t3\t1\n" +
	"1\t3\t3\t3\t5\t9\t0\t10\t4\t4\t2\t1\n"

func TestParseInstance_Ft06ParsesToExpectedShape(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(ft06Instance))
	require.NoError(t, err)

	assert.Equal(t, 6, inst.Jobs)
	assert.Equal(t, 6, inst.Machines)
	assert.Len(t, inst.Ops, 36)

	op0 := inst.Op(0, 0)
	assert.Equal(t, jssp.Operation{Job: 0, OpIndex: 0, Machine: 2, Duration: 1}, op0)
	lastOp := inst.Op(5, 5)
	assert.Equal(t, jssp.Operation{Job: 5, OpIndex: 5, Machine: 2, Duration: 1}, lastOp)
}

func TestParseInstance_RejectsTruncatedFile(t *testing.T) {
	truncated := "6\t6\n2\t1\t0\t3\t1\t6\t3\t7\t5\t3\t4\t6\n"
	_, err := ParseInstance(strings.NewReader(truncated))
	assert.Error(t, err)
}

func TestParseInstance_RejectsMalformedHeader(t *testing.T) {
	_, err := ParseInstance(strings.NewReader("not-a-header\n"))
	assert.Error(t, err)
}

func TestWriteSolutionThenReadSolution_RoundTrips(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(ft06Instance))
	require.NoError(t, err)

	identity := make([]int, inst.Jobs)
	for i := range identity {
		identity[i] = i
	}
	machines := make([][]int, inst.Machines)
	for m := range machines {
		machines[m] = append([]int(nil), identity...)
	}
	sol := jssp.Solution{Machines: machines}
	eval, err := jssp.NewEvaluator(inst)
	require.NoError(t, err)
	sol.Makespan, err = eval.ExactMakespan(sol)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteSolution(&buf, sol))

	roundTripped, err := ReadSolution(strings.NewReader(buf.String()), inst)
	require.NoError(t, err)
	assert.Equal(t, sol.Machines, roundTripped.Machines)
	assert.Equal(t, sol.Makespan, roundTripped.Makespan)
}

func TestReadSolution_RecomputesMakespanIgnoringStaleFirstLine(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(ft06Instance))
	require.NoError(t, err)

	identity := make([]int, inst.Jobs)
	for i := range identity {
		identity[i] = i
	}
	var buf strings.Builder
	buf.WriteString("999999\n")
	for m := 0; m < inst.Machines; m++ {
		strs := make([]string, len(identity))
		for i, j := range identity {
			strs[i] = strconv.Itoa(j)
		}
		buf.WriteString(strings.Join(strs, "\t"))
		buf.WriteString("\n")
	}

	sol, err := ReadSolution(strings.NewReader(buf.String()), inst)
	require.NoError(t, err)
	assert.NotEqual(t, 999999, sol.Makespan)
}

func TestReadSolution_RejectsWrongMachineLineCount(t *testing.T) {
	inst, err := ParseInstance(strings.NewReader(ft06Instance))
	require.NoError(t, err)
	_, err = ReadSolution(strings.NewReader("55\n0\t1\t2\t3\t4\t5\n"), inst)
	assert.Error(t, err)
}
