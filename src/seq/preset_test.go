package seq

import "testing"

func TestPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	pm := NewPresetManager(dir)

	s := NewStore()
	s.Set(ParamEdo, 19.0)
	s.Set(ParamScaleNotes, 9.0)
	s.Set(ParamOrder, "shuffle")
	if err := pm.Save("nineteen", s); err != nil {
		t.Fatal(err)
	}

	loaded := NewStore()
	if err := pm.Load("nineteen", loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.Int(ParamEdo) != 19 {
		t.Errorf("edo = %d, want 19", loaded.Int(ParamEdo))
	}
	if loaded.Int(ParamScaleNotes) != 9 {
		t.Errorf("scaleNotes = %d, want 9", loaded.Int(ParamScaleNotes))
	}
	if loaded.String(ParamOrder) != "shuffle" {
		t.Errorf("order = %q, want shuffle", loaded.String(ParamOrder))
	}
}

func TestPresetList(t *testing.T) {
	dir := t.TempDir()
	pm := NewPresetManager(dir)
	names, err := pm.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Errorf("expected empty list, got %v", names)
	}
	s := NewStore()
	if err := pm.Save("b", s); err != nil {
		t.Fatal(err)
	}
	if err := pm.Save("a", s); err != nil {
		t.Fatal(err)
	}
	names, err = pm.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("list = %v, want [a b]", names)
	}
}

func TestPresetLoadMissing(t *testing.T) {
	pm := NewPresetManager(t.TempDir())
	if err := pm.Load("nope", NewStore()); err == nil {
		t.Error("expected an error for a missing preset")
	}
}
