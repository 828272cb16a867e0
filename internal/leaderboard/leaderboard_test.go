package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func rowJSON(fullName string, avg float64) string {
	return fmt.Sprintf(`{"row": {"fullname": %q, "Average ⬆️": %g}}`, fullName, avg)
}

func TestFetchSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("dataset") != "open-llm-leaderboard/contents" {
			t.Errorf("dataset = %q", q.Get("dataset"))
		}
		if q.Get("config") != "default" || q.Get("split") != "train" {
			t.Errorf("config/split = %q/%q", q.Get("config"), q.Get("split"))
		}
		_, _ = fmt.Fprintf(w, `{"rows": [%s, %s]}`,
			rowJSON("meta-llama/Llama-3-70B", 36.5),
			rowJSON("Qwen/Qwen2-72B", 42.1))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "open-llm-leaderboard/contents", 100, 500)
	ks, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := ks["llama-3-70b"]
	if e == nil {
		t.Fatal("expected normalized model-name key")
	}
	if e.Average == nil || *e.Average != 36.5 {
		t.Errorf("Average = %v", e.Average)
	}
	if ks["meta-llama/llama-3-70b"] == nil {
		t.Error("expected lowercased full-name key")
	}
}

func TestFetchPaginatesUntilShortPage(t *testing.T) {
	var offsets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		count := 2 // full page
		if offset >= 2 {
			count = 1 // short page ends pagination
		}
		rows := make([]string, count)
		for i := range rows {
			rows[i] = rowJSON(fmt.Sprintf("org/model-%d-%d", offset, i), 10)
		}
		body := `{"rows": [` + rows[0]
		for _, r := range rows[1:] {
			body += ", " + r
		}
		_, _ = w.Write([]byte(body + `]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ds", 2, 10)
	_, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 2 {
		t.Errorf("offsets = %v, want [0 2]", offsets)
	}
}

func TestFetchStopsAtRowCap(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = fmt.Fprintf(w, `{"rows": [%s, %s]}`,
			rowJSON(fmt.Sprintf("org/a-%d", calls), 1),
			rowJSON(fmt.Sprintf("org/b-%d", calls), 2))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ds", 2, 4)
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("made %d page calls, want 2 (row cap 4 at page size 2)", calls)
	}
}

func TestFetchFirstPageErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ds", 100, 500)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Error("expected error when the first page fails")
	}
}

func TestFetchKeepsPartialRowsOnMidPaginationError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = fmt.Fprintf(w, `{"rows": [%s, %s]}`,
			rowJSON("org/kept-model-a", 1),
			rowJSON("org/kept-model-b", 2))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "ds", 2, 10)
	ks, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("mid-pagination error must not surface: %v", err)
	}
	if ks["kept-model-a"] == nil || ks["kept-model-b"] == nil {
		t.Error("rows from completed pages must be kept")
	}
}

func TestRowColumnMapping(t *testing.T) {
	raw := `{
		"fullname": "mistralai/Mistral-7B-Instruct-v0.2",
		"Model": "ignored-when-fullname-set",
		"Average ⬆️": 65.7,
		"IFEval": 54.5,
		"BBH": 25.3,
		"MATH Lvl 5": 3.1,
		"GPQA": 6.9,
		"MUSR": 11.8,
		"MMLU-PRO": 22.6,
		"Hub License": "apache-2.0",
		"Precision": "bfloat16",
		"Type": "fine-tuned",
		"Architecture": "MistralForCausalLM",
		"#Params (B)": 7.24
	}`
	var r row
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatal(err)
	}
	if r.FullName != "mistralai/Mistral-7B-Instruct-v0.2" {
		t.Errorf("FullName = %q", r.FullName)
	}
	if r.Average == nil || *r.Average != 65.7 {
		t.Errorf("Average = %v, decorated column header must map", r.Average)
	}
	if r.MathLvl5 == nil || *r.MathLvl5 != 3.1 {
		t.Errorf("MathLvl5 = %v", r.MathLvl5)
	}
	if r.License != "apache-2.0" {
		t.Errorf("License = %q", r.License)
	}
	if r.Params == nil || *r.Params != 7.24 {
		t.Errorf("Params = %v", r.Params)
	}
}

func TestBuildKeySpaceVariants(t *testing.T) {
	avg := 50.0
	ks := buildKeySpace([]row{{FullName: "meta-llama/Meta-Llama-3.1-70B-Instruct", Average: &avg}})

	wantKeys := []string{
		"meta-llama-3.1-70b-instruct",            // lowercased model name
		"meta-llama/meta-llama-3.1-70b-instruct", // lowercased full name
		"meta-llama-3-1-70b-instruct",            // normalized
		"meta-llama-3-1-70b",                     // suffix-stripped base
	}
	for _, k := range wantKeys {
		if ks[k] == nil {
			t.Errorf("missing key %q", k)
		}
	}

	e := ks["meta-llama-3-1-70b"]
	if e.ModelName != "Meta-Llama-3.1-70B-Instruct" {
		t.Errorf("ModelName = %q", e.ModelName)
	}
}

func TestBuildKeySpaceFallsBackToModelColumn(t *testing.T) {
	ks := buildKeySpace([]row{{Model: "SoloModel-7B"}})
	if ks["solomodel-7b"] == nil {
		t.Error("Model column must serve as the name when fullname is empty")
	}
}

func TestBuildKeySpaceSkipsNamelessRows(t *testing.T) {
	avg := 1.0
	if ks := buildKeySpace([]row{{Average: &avg}}); len(ks) != 0 {
		t.Errorf("got %d keys from a nameless row", len(ks))
	}
}
