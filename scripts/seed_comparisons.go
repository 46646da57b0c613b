// seed_comparisons.go: standalone script to replay pairwise judgements against the Arbiter API.
//
// Each non-empty line of the input is "row, col, value"; criteria are named
// as in the catalog and the value may be a fraction such as 1/3. Lines
// starting with # are ignored.
//
// Usage:
//
//	go run scripts/seed_comparisons.go -file judgements.txt -api http://localhost:8700 -client seed
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type comparison struct {
	RowName string  `json:"row_name"`
	ColName string  `json:"col_name"`
	Value   float64 `json:"value"`
}

type result struct {
	Consistency struct {
		ConsistencyRatio float64 `json:"consistency_ratio"`
		IsConsistent     bool    `json:"is_consistent"`
	} `json:"consistency"`
	Best *struct {
		ID string `json:"id"`
	} `json:"best"`
	Warning string `json:"warning"`
}

func main() {
	path := flag.String("file", "judgements.txt", "path to judgements file")
	apiURL := flag.String("api", "http://localhost:8700", "Arbiter API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print comparisons without sending")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("open judgements: %v", err)
	}
	defer f.Close()

	var items []comparison
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := parseLine(line)
		if err != nil {
			log.Fatalf("line %d: %v", lineNo, err)
		}
		items = append(items, c)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("scan judgements: %v", err)
	}

	log.Printf("parsed %d comparisons from %s", len(items), *path)

	if *dryRun {
		for i, c := range items {
			fmt.Printf("[%d] %s vs %s = %g\n", i+1, c.RowName, c.ColName, c.Value)
		}
		return
	}

	client := &http.Client{}
	applied, rejected := 0, 0
	var last result
	for _, c := range items {
		body, _ := json.Marshal(c)
		req, err := http.NewRequest("PUT", *apiURL+"/api/v1/matrix/comparisons", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %s/%s: %v", c.RowName, c.ColName, err)
			rejected++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %s/%s: %v", c.RowName, c.ColName, err)
			rejected++
			continue
		}
		if resp.StatusCode == http.StatusOK {
			_ = json.NewDecoder(resp.Body).Decode(&last)
			applied++
		} else {
			log.Printf("skip %s/%s: status %d", c.RowName, c.ColName, resp.StatusCode)
			rejected++
		}
		resp.Body.Close()
	}

	log.Printf("done: %d applied, %d rejected", applied, rejected)
	if applied > 0 {
		best := "none"
		if last.Best != nil {
			best = last.Best.ID
		}
		log.Printf("consistency ratio %.2f (consistent=%t), best %s", last.Consistency.ConsistencyRatio, last.Consistency.IsConsistent, best)
		if last.Warning != "" {
			log.Print(last.Warning)
		}
	}
}

func parseLine(line string) (comparison, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return comparison{}, fmt.Errorf("expected \"row, col, value\", got %q", line)
	}
	v, err := parseValue(strings.TrimSpace(parts[2]))
	if err != nil {
		return comparison{}, err
	}
	return comparison{
		RowName: strings.TrimSpace(parts[0]),
		ColName: strings.TrimSpace(parts[1]),
		Value:   v,
	}, nil
}

func parseValue(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("value %q: bad denominator", s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q: %w", s, err)
	}
	return v, nil
}
