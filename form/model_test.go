package form

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func buildTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	profile := r.AddGroup("Profile")
	r.MustAdd(profile, NewStringField("name", "Name", "text field", "Robin Sena"))
	r.MustAdd(profile, NewIntField("age", "Age", "integer field", 15, 0, math.MaxInt))
	r.MustAdd(profile, NewFloatField("height", "Height (m)", "float field", 1.68, 0.0, 2.0))
	r.MustAdd(profile, NewBoolField("is_protagonist", "Protagonist", "checkbox field", true))
	plot := r.AddGroup("Plot")
	r.MustAdd(plot, NewOptionField("gender", "Gender", "option field", []string{"Male", "Female", "[Secret]"}, "Female"))
	r.MustAdd(plot, NewMultiOptionField("occupation", "Occupation", "multi field",
		[]string{"Lead", "Warrior", "Wizard", "Detective"}, []string{"Wizard", "Detective"}))
	return r
}

func TestRegistryOrder(t *testing.T) {
	r := buildTestRegistry(t)

	fields := r.Fields()
	wantKeys := []string{"name", "age", "height", "is_protagonist", "gender", "occupation"}
	if len(fields) != len(wantKeys) {
		t.Fatalf("Fields returned %d fields, want %d", len(fields), len(wantKeys))
	}
	for i, f := range fields {
		if f.Key() != wantKeys[i] {
			t.Errorf("field %d key = %s, want %s", i, f.Key(), wantKeys[i])
		}
	}

	if len(r.Groups()) != 2 {
		t.Errorf("Groups = %d, want 2", len(r.Groups()))
	}
}

func TestRegistryDuplicateKey(t *testing.T) {
	r := NewRegistry()
	g := r.AddGroup("General")
	r.MustAdd(g, NewIntField("freq", "Frequency", "", 440, 20, 20000))
	if _, err := r.Add(g, NewIntField("freq", "Frequency 2", "", 440, 20, 20000)); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate Add err = %v, want ErrDuplicateKey", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := buildTestRegistry(t)
	if _, err := r.Lookup("age"); err != nil {
		t.Errorf("Lookup(age) failed: %v", err)
	}
	if _, err := r.Lookup("ghost"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Lookup(ghost) err = %v, want ErrUnknownField", err)
	}
}

func TestSnapshotCoversAllFields(t *testing.T) {
	r := buildTestRegistry(t)
	m := r.Snapshot()

	// The model's key set is exactly the registered field set.
	if len(m) != r.Len() {
		t.Fatalf("snapshot has %d keys, registry has %d fields", len(m), r.Len())
	}
	for _, f := range r.Fields() {
		if _, ok := m[f.Key()]; !ok {
			t.Errorf("snapshot missing key %s", f.Key())
		}
	}

	if m["name"] != "Robin Sena" || m["age"] != 15 || m["is_protagonist"] != true {
		t.Errorf("unexpected snapshot values: %v", m)
	}
}

func TestApplyMissingKeyKeepsValue(t *testing.T) {
	r := buildTestRegistry(t)
	age, _ := r.Lookup("age")
	_ = age.SetValue(40)

	// "age" missing from the mapping: the field keeps its value.
	r.Apply(Model{"name": "Amon"})

	if age.Value() != 40 {
		t.Errorf("age = %v after Apply, want 40", age.Value())
	}
	name, _ := r.Lookup("name")
	if name.Value() != "Amon" {
		t.Errorf("name = %v, want Amon", name.Value())
	}
}

func TestApplyRejectedValueKeepsValue(t *testing.T) {
	r := buildTestRegistry(t)
	height, _ := r.Lookup("height")

	r.Apply(Model{"height": 9.99}) // outside [0, 2]

	if height.Value() != 1.68 {
		t.Errorf("height = %v after rejected Apply, want default 1.68", height.Value())
	}
}

func TestResetIdempotent(t *testing.T) {
	r := buildTestRegistry(t)
	name, _ := r.Lookup("name")
	_ = name.SetValue("Amon")

	r.Reset()
	first := r.Snapshot()
	r.Reset()
	second := r.Snapshot()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reset not idempotent: %v vs %v", first, second)
	}
	if first["name"] != "Robin Sena" {
		t.Errorf("name after reset = %v, want default", first["name"])
	}
}

func TestFilter(t *testing.T) {
	r := buildTestRegistry(t)

	tests := []struct {
		keyword string
		want    int
	}{
		{"", 6},
		{"height", 1},
		{"HEIGHT", 1},
		{"  age ", 1},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		got := r.Filter(tt.keyword)
		if len(got) != tt.want {
			t.Errorf("Filter(%q) = %d fields, want %d", tt.keyword, len(got), tt.want)
		}
	}
}
