// Package attrio reads the whitespace-separated attribute table format
// from SPEC_FULL.md §6: a header line naming each attribute, then one
// line per node giving its values; "NA" (case-insensitive) marks a
// missing entry. Binary, categorical, continuous, and set-valued tables
// each get their own reader since their missing-value sentinel and
// parsing rule differ (SPEC_FULL.md §3, §12.3).
package attrio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gilchrisn/ergm-estimnet/internal/graph"
)

func isNA(field string) bool {
	return strings.EqualFold(field, "NA")
}

func readTable(r io.Reader, n int) (names []string, rows [][]string, err error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("attrio: empty attribute file: %w", graph.ErrInput)
	}
	names = strings.Fields(scanner.Text())
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("attrio: empty attribute header: %w", graph.ErrInput)
	}

	rows = make([][]string, 0, n)
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(names) {
			return nil, nil, fmt.Errorf("attrio: line %d: expected %d columns, got %d: %w", lineNo, len(names), len(fields), graph.ErrInput)
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("attrio: %w", err)
	}
	if len(rows) != n {
		return nil, nil, fmt.Errorf("attrio: expected %d node rows, got %d: %w", n, len(rows), graph.ErrInput)
	}
	return names, rows, nil
}

// ReadBinary parses a binary attribute table (0/1 values) into
// attrs.Binary, one entry per column name.
func ReadBinary(r io.Reader, n int, attrs *graph.Attributes) error {
	names, rows, err := readTable(r, n)
	if err != nil {
		return err
	}
	for col, name := range names {
		vals := make([]int32, n)
		for i, row := range rows {
			if isNA(row[col]) {
				vals[i] = graph.Missing
				continue
			}
			v, err := strconv.Atoi(row[col])
			if err != nil || (v != 0 && v != 1) {
				return fmt.Errorf("attrio: node %d attribute %q: invalid binary value %q: %w", i, name, row[col], graph.ErrInput)
			}
			vals[i] = int32(v)
		}
		attrs.Binary[name] = vals
	}
	return nil
}

// ReadCategorical parses a categorical attribute table (arbitrary
// integer codes) into attrs.Categorical.
func ReadCategorical(r io.Reader, n int, attrs *graph.Attributes) error {
	names, rows, err := readTable(r, n)
	if err != nil {
		return err
	}
	for col, name := range names {
		vals := make([]int32, n)
		for i, row := range rows {
			if isNA(row[col]) {
				vals[i] = graph.Missing
				continue
			}
			v, err := strconv.Atoi(row[col])
			if err != nil {
				return fmt.Errorf("attrio: node %d attribute %q: invalid categorical value %q: %w", i, name, row[col], graph.ErrInput)
			}
			vals[i] = int32(v)
		}
		attrs.Categorical[name] = vals
	}
	return nil
}

// ReadContinuous parses a continuous (real-valued) attribute table into
// attrs.Continuous, with missing entries set to NaN.
func ReadContinuous(r io.Reader, n int, attrs *graph.Attributes) error {
	names, rows, err := readTable(r, n)
	if err != nil {
		return err
	}
	for col, name := range names {
		vals := make([]float64, n)
		for i, row := range rows {
			if isNA(row[col]) {
				vals[i] = graph.MissingContinuous
				continue
			}
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return fmt.Errorf("attrio: node %d attribute %q: invalid continuous value %q: %w", i, name, row[col], graph.ErrInput)
			}
			vals[i] = v
		}
		attrs.Continuous[name] = vals
	}
	return nil
}

// ReadZones parses the zoneFile format: a first line giving max_zone,
// then one zone-number line per node (SPEC_FULL.md §6 names the key but
// not the format; this mirrors the other attribute tables' one-value-
// per-line, header-first shape, with the header reduced to the single
// max_zone scalar the sampler's conditional-estimation branch needs).
func ReadZones(r io.Reader, n int) (zone []int32, maxZone int32, err error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, 0, fmt.Errorf("attrio: empty zone file: %w", graph.ErrInput)
	}
	mz, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, 0, fmt.Errorf("attrio: invalid max_zone %q: %w", scanner.Text(), graph.ErrInput)
	}

	zone = make([]int32, 0, n)
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, 0, fmt.Errorf("attrio: line %d: invalid zone %q: %w", lineNo, line, graph.ErrInput)
		}
		zone = append(zone, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("attrio: %w", err)
	}
	if len(zone) != n {
		return nil, 0, fmt.Errorf("attrio: expected %d zone rows, got %d: %w", n, len(zone), graph.ErrInput)
	}
	return zone, int32(mz), nil
}

// ReadSetValued parses a set-valued attribute table: each cell is a
// comma-separated list of integers (or "NA" for missing, represented as
// a nil slice).
func ReadSetValued(r io.Reader, n int, attrs *graph.Attributes) error {
	names, rows, err := readTable(r, n)
	if err != nil {
		return err
	}
	for col, name := range names {
		vals := make([][]int32, n)
		for i, row := range rows {
			if isNA(row[col]) {
				vals[i] = nil
				continue
			}
			parts := strings.Split(row[col], ",")
			set := make([]int32, 0, len(parts))
			for _, p := range parts {
				v, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return fmt.Errorf("attrio: node %d attribute %q: invalid set element %q: %w", i, name, p, graph.ErrInput)
				}
				set = append(set, int32(v))
			}
			vals[i] = set
		}
		attrs.SetValued[name] = vals
	}
	return nil
}
