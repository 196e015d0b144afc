package model

import (
	"encoding/json"
	"testing"
)

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name      string
		value     Value
		wantKind  ValueKind
		wantText  string
		wantFloat float64
		wantOK    bool
	}{
		{"int", IntValue(42), KindInt, "42", 42, true},
		{"negative int", IntValue(-3), KindInt, "-3", -3, true},
		{"float", FloatValue(30.62), KindFloat, "30.62", 30.62, true},
		{"string", StringValue("main"), KindString, "main", 0, false},
		{"missing", MissingValue(), KindMissing, "null", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Kind(); got != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got, tt.wantKind)
			}
			if got := tt.value.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			f, ok := tt.value.Float()
			if ok != tt.wantOK {
				t.Fatalf("Float() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && f != tt.wantFloat {
				t.Errorf("Float() = %v, want %v", f, tt.wantFloat)
			}
		})
	}
}

func TestValueMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"int", IntValue(7), "7"},
		{"float", FloatValue(0.5), "0.5"},
		{"string", StringValue("unknown"), `"unknown"`},
		{"missing", MissingValue(), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestMetricSetOrderAndLookup(t *testing.T) {
	ms := NewMetricSet()
	ms.Set("total_commits", IntValue(245))
	ms.Set("repo_name", StringValue("demo"))
	ms.Set("merge_commits", IntValue(0))

	want := []string{"total_commits", "repo_name", "merge_commits"}
	got := ms.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v := ms.Get("repo_name"); v.Text() != "demo" {
		t.Errorf("Get(repo_name) = %q, want demo", v.Text())
	}
	if v := ms.Get("never_collected"); !v.IsMissing() {
		t.Error("Get on unknown name should be missing")
	}
}

func TestMetricSetOverwriteKeepsPosition(t *testing.T) {
	ms := NewMetricSet()
	ms.Set("a", IntValue(1))
	ms.Set("b", IntValue(2))
	ms.Set("a", IntValue(3))

	names := ms.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	if v, _ := ms.Get("a").Float(); v != 3 {
		t.Errorf("Get(a) = %v, want 3", v)
	}
}

func TestMetricSetHasMissing(t *testing.T) {
	ms := NewMetricSet()
	ms.Set("a", IntValue(1))
	if ms.HasMissing() {
		t.Error("HasMissing() = true for complete set")
	}
	ms.Set("b", MissingValue())
	if !ms.HasMissing() {
		t.Error("HasMissing() = false after adding a missing value")
	}
}

func TestMetricSetMarshalJSONPreservesOrder(t *testing.T) {
	ms := NewMetricSet()
	ms.Set("zulu", IntValue(1))
	ms.Set("alpha", StringValue("x"))
	ms.Set("gone", MissingValue())

	data, err := json.Marshal(ms)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"zulu":1,"alpha":"x","gone":null}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestNilMetricSet(t *testing.T) {
	var ms *MetricSet
	if !ms.Get("x").IsMissing() {
		t.Error("nil MetricSet Get should be missing")
	}
	if ms.Len() != 0 {
		t.Error("nil MetricSet Len should be 0")
	}
	if ms.HasMissing() {
		t.Error("nil MetricSet HasMissing should be false")
	}
}
