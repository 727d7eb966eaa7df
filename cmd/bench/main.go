// bench - TOON benchmark runner
//
// Compares canonical TOON encoding against minified JSON on wire
// size across a small built-in corpus of representative documents
// (flat records, tabular lists, nested objects). Token-count
// estimation is deliberately not attempted here: without a real
// tokenizer any number would be a guess dressed up as data.
//
// Output: CSV and markdown summary, plus a stdout total.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/elminson/toon/toon"
)

// CaseResult holds the wire-size comparison for one corpus entry.
type CaseResult struct {
	Name       string
	JSONBytes  int
	TOONBytes  int
	BytesSaved int
	BytesPct   float64
}

type corpusCase struct {
	name string
	doc  string // JSON source
}

var corpus = []corpusCase{
	{"flat_record", `{"id":1001,"name":"widget-a","active":true,"price":19.99,"tags":["hardware","sale"]}`},
	{"tabular_users", `{"users":[{"id":1,"name":"alice","role":"admin"},{"id":2,"name":"bob","role":"editor"},{"id":3,"name":"carol","role":"viewer"}]}`},
	{"nested_config", `{"service":{"name":"api","env":"prod","limits":{"maxConns":100,"timeoutMs":3000},"features":["auth","cache","retry"]}}`},
	{"mixed_list", `{"events":[{"type":"login","ok":true},{"type":"logout"},{"type":"error","ok":false,"code":500}]}`},
	{"empty_shapes", `{"items":[],"meta":{},"note":""}`},
	{"scalar_heavy", `{"count":42,"ratio":0.375,"label":"q3-report","enabled":false,"parent":null}`},
}

func main() {
	fmt.Fprintf(os.Stderr, "TOON Benchmark Runner\n")
	fmt.Fprintf(os.Stderr, "======================\n")
	fmt.Fprintf(os.Stderr, "Corpus: builtin (%d cases)\n\n", len(corpus))

	var results []CaseResult
	var totalJSONBytes, totalTOONBytes int

	for _, c := range corpus {
		v, err := toon.FromJSON([]byte(c.doc))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", c.name, err)
			continue
		}

		var parsed any
		if err := json.Unmarshal([]byte(c.doc), &parsed); err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", c.name, err)
			continue
		}
		jsonMin, _ := json.Marshal(parsed)
		toonStr := toon.Encode(v)

		jsonBytes := len(jsonMin)
		toonBytes := len(toonStr)
		bytesSaved := jsonBytes - toonBytes
		bytesPct := 0.0
		if jsonBytes > 0 {
			bytesPct = float64(bytesSaved) / float64(jsonBytes) * 100.0
		}

		results = append(results, CaseResult{
			Name:       c.name,
			JSONBytes:  jsonBytes,
			TOONBytes:  toonBytes,
			BytesSaved: bytesSaved,
			BytesPct:   bytesPct,
		})

		totalJSONBytes += jsonBytes
		totalTOONBytes += toonBytes
	}

	if f, err := os.Create("bench_results.csv"); err == nil {
		writeCSV(f, results)
		f.Close()
		fmt.Fprintf(os.Stderr, "CSV written to: bench_results.csv\n")
	}
	if f, err := os.Create("BENCH.md"); err == nil {
		writeMarkdown(f, results, totalJSONBytes, totalTOONBytes)
		f.Close()
		fmt.Fprintf(os.Stderr, "Markdown written to: BENCH.md\n")
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Cases:       %d\n", len(results))
	fmt.Printf("JSON total:  %d bytes\n", totalJSONBytes)
	fmt.Printf("TOON total:  %d bytes\n", totalTOONBytes)
	if totalJSONBytes > 0 {
		fmt.Printf("Bytes saved: %d (%.1f%%)\n", totalJSONBytes-totalTOONBytes,
			float64(totalJSONBytes-totalTOONBytes)/float64(totalJSONBytes)*100)
	}
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,json_bytes,toon_bytes,bytes_saved,bytes_pct")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%d,%d,%d,%.1f\n", r.Name, r.JSONBytes, r.TOONBytes, r.BytesSaved, r.BytesPct)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, totalJSON, totalTOON int) {
	fmt.Fprintf(w, "# TOON Benchmark Results\n\n")
	fmt.Fprintf(w, "**Corpus:** builtin (%d cases)\n\n", len(results))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | JSON (minified) | TOON | Savings |\n")
	fmt.Fprintf(w, "|--------|------------------|------|---------|\n")
	bytesSaved := totalJSON - totalTOON
	bytesPct := 0.0
	if totalJSON > 0 {
		bytesPct = float64(bytesSaved) / float64(totalJSON) * 100
	}
	fmt.Fprintf(w, "| **Bytes** | %d | %d | %d (%.1f%%) |\n\n", totalJSON, totalTOON, bytesSaved, bytesPct)

	sorted := make([]CaseResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].BytesPct > sorted[j].BytesPct })

	fmt.Fprintf(w, "### Cases by savings\n\n")
	fmt.Fprintf(w, "| Case | JSON | TOON | Saved |\n")
	fmt.Fprintf(w, "|------|------|------|-------|\n")
	for _, r := range sorted {
		fmt.Fprintf(w, "| %s | %d | %d | %.1f%% |\n", r.Name, r.JSONBytes, r.TOONBytes, r.BytesPct)
	}

	fmt.Fprintf(w, "\n### Cases Where JSON is Smaller\n\n")
	var worse []CaseResult
	for _, r := range results {
		if r.BytesSaved < 0 {
			worse = append(worse, r)
		}
	}
	if len(worse) == 0 {
		fmt.Fprintf(w, "_None - TOON is smaller or equal in all cases._\n\n")
	} else {
		fmt.Fprintf(w, "| Case | JSON | TOON | Overhead |\n")
		fmt.Fprintf(w, "|------|------|------|----------|\n")
		for _, r := range worse {
			fmt.Fprintf(w, "| %s | %d | %d | +%d bytes |\n", r.Name, r.JSONBytes, r.TOONBytes, -r.BytesSaved)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Methodology\n\n")
	fmt.Fprintf(w, "- **JSON:** minified (no whitespace), via Go's `json.Marshal`\n")
	fmt.Fprintf(w, "- **TOON:** canonical encoding via `toon.Encode` with default options\n")
}
