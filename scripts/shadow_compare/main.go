// Command shadow_compare replays list and greeting requests against this service and the legacy
// deployment and reports where status codes or bodies diverge.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Body     string `json:"body,omitempty"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type sample struct {
	status   int
	body     []byte
	duration time.Duration
}

type comparison struct {
	Target      target
	Legacy      sample
	Go          sample
	StatusMatch bool
	BodyMatch   bool
	Error       error
}

// volatileKeys differ on every response and are dropped before bodies are compared.
var volatileKeys = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		apiKey      string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.StringVar(&apiKey, "api-key", "shadow-compare", "X-API-Key sent to both services")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range targets {
		comp := compareTarget(context.Background(), client, goBase, legacyBase, apiKey, t)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(os.Stdout, comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

// compareTarget sends the same request to both services at once so rate windows line up.
func compareTarget(ctx context.Context, client *http.Client, goBase, legacyBase, apiKey string, tgt target) comparison {
	comp := comparison{Target: tgt}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := fetch(gctx, client, goBase, apiKey, tgt)
		if err != nil {
			return fmt.Errorf("go request failed: %w", err)
		}
		comp.Go = s
		return nil
	})
	g.Go(func() error {
		s, err := fetch(gctx, client, legacyBase, apiKey, tgt)
		if err != nil {
			return fmt.Errorf("legacy request failed: %w", err)
		}
		comp.Legacy = s
		return nil
	})
	if err := g.Wait(); err != nil {
		comp.Error = err
		return comp
	}

	comp.StatusMatch = comp.Go.status == comp.Legacy.status
	comp.BodyMatch = bodiesEqual(comp.Go.body, comp.Legacy.body)
	return comp
}

func fetch(ctx context.Context, client *http.Client, base, apiKey string, tgt target) (sample, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if tgt.Body != "" {
		body = strings.NewReader(tgt.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return sample{}, err
	}
	req.Header.Set("X-API-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return sample{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return sample{}, fmt.Errorf("read body: %w", err)
	}
	return sample{status: resp.StatusCode, body: raw, duration: time.Since(start)}, nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(normalize(aj), normalize(bj))
}

// normalize drops volatile keys and collapses integral floats so 3 and 3.0 compare equal.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			if _, skip := volatileKeys[k]; skip {
				continue
			}
			out[k] = normalize(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = normalize(child)
		}
		return out
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return val
	}
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Fprintf(w, "  Go: %d (%s) | Legacy: %d (%s)\n", res.Go.status, res.Go.duration, res.Legacy.status, res.Legacy.duration)
		if res.Error != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Error)
		} else {
			fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
