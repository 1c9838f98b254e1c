// Package jsspio implements the text-format I/O surface of §6: parsing
// instance files and reading/writing solution files. It is ambient —
// none of the core packages (jssp, dgraph, neighbourhood, tabulist,
// tabu, memetic, seeder) import it; only internal/bench does, to load the
// instance files cmd/bench is given.
package jsspio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"jssp/internal/jssp"
)

// ParseInstance reads the instance file format: line 1 is "<jobs>\t<machines>",
// followed by one line per job containing 2*machines tab-separated
// integers alternating machine/duration, machine ids 0-based.
func ParseInstance(r io.Reader) (*jssp.Instance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("jsspio: empty instance file")
	}
	jobs, machines, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	ops := make([]jssp.Operation, 0, jobs*machines)
	for job := 0; job < jobs; job++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("jsspio: expected %d job lines, got %d", jobs, job)
		}
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(fields) != 2*machines {
			return nil, fmt.Errorf("jsspio: job %d: expected %d fields, got %d", job, 2*machines, len(fields))
		}
		for opIdx := 0; opIdx < machines; opIdx++ {
			machine, err := strconv.Atoi(fields[2*opIdx])
			if err != nil {
				return nil, fmt.Errorf("jsspio: job %d op %d: bad machine id: %w", job, opIdx, err)
			}
			duration, err := strconv.Atoi(fields[2*opIdx+1])
			if err != nil {
				return nil, fmt.Errorf("jsspio: job %d op %d: bad duration: %w", job, opIdx, err)
			}
			ops = append(ops, jssp.Operation{Job: job, OpIndex: opIdx, Machine: machine, Duration: duration})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("jsspio: %w", err)
	}
	return jssp.NewInstance(jobs, machines, ops, 0)
}

func parseHeader(line string) (jobs, machines int, err error) {
	fields := strings.SplitN(strings.TrimRight(line, "\r\n"), "\t", 2)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("jsspio: header must be \"<jobs>\\t<machines>\", got %q", line)
	}
	jobs, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("jsspio: bad job count: %w", err)
	}
	machines, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("jsspio: bad machine count: %w", err)
	}
	return jobs, machines, nil
}

// ReadSolution reads the solution file format: line 1 is the makespan,
// lines 2..machines+1 each contain jobs tab-separated job ids forming
// that machine's permutation. The stored makespan is not trusted — it is
// recomputed via inst's evaluator against the parsed permutations, so a
// stale or hand-edited first line never desyncs the returned Solution.
func ReadSolution(r io.Reader, inst *jssp.Instance) (jssp.Solution, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return jssp.Solution{}, fmt.Errorf("jsspio: empty solution file")
	}
	if _, err := strconv.Atoi(strings.TrimRight(scanner.Text(), "\r\n")); err != nil {
		return jssp.Solution{}, fmt.Errorf("jsspio: bad makespan line: %w", err)
	}

	machines := make([][]int, 0, inst.Machines)
	for m := 0; m < inst.Machines; m++ {
		if !scanner.Scan() {
			return jssp.Solution{}, fmt.Errorf("jsspio: expected %d machine lines, got %d", inst.Machines, m)
		}
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		perm := make([]int, len(fields))
		for i, f := range fields {
			job, err := strconv.Atoi(f)
			if err != nil {
				return jssp.Solution{}, fmt.Errorf("jsspio: machine %d: bad job id: %w", m, err)
			}
			perm[i] = job
		}
		machines = append(machines, perm)
	}
	if err := scanner.Err(); err != nil {
		return jssp.Solution{}, fmt.Errorf("jsspio: %w", err)
	}

	sol := jssp.Solution{Machines: machines}
	eval, err := jssp.NewEvaluator(inst)
	if err != nil {
		return jssp.Solution{}, err
	}
	makespan, err := eval.ExactMakespan(sol)
	if err != nil {
		return jssp.Solution{}, fmt.Errorf("jsspio: %w", err)
	}
	sol.Makespan = makespan
	return sol, nil
}

// WriteSolution writes sol in the solution file format described above.
func WriteSolution(w io.Writer, sol jssp.Solution) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\n", sol.Makespan); err != nil {
		return err
	}
	for _, seq := range sol.Machines {
		strs := lo.Map(seq, func(job int, _ int) string { return strconv.Itoa(job) })
		if _, err := fmt.Fprintln(bw, strings.Join(strs, "\t")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
