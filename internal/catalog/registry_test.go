package catalog

import "testing"

func TestSchemaForKnownTags(t *testing.T) {
	tests := []struct {
		tag       string
		wantLabel string
		wantIcon  string
		wantColor string
	}{
		{tag: TypeFlight, wantLabel: "Flight Ticket", wantIcon: "airplane", wantColor: "#FF6B6B"},
		{tag: TypeTrain, wantLabel: "Train Ticket", wantIcon: "train", wantColor: "#4ECDC4"},
		{tag: TypeHotel, wantLabel: "Hotel Booking", wantIcon: "business", wantColor: "#45B7D1"},
		{tag: TypeCar, wantLabel: "Car Rental", wantIcon: "car", wantColor: "#96CEB4"},
		{tag: TypeID, wantLabel: "Valid ID", wantIcon: "card", wantColor: "#FECA57"},
		{tag: TypeOther, wantLabel: "Other", wantIcon: "document", wantColor: "#778CA3"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := SchemaFor(tt.tag)
			if got.Label != tt.wantLabel || got.Icon != tt.wantIcon || got.Color != tt.wantColor {
				t.Errorf("SchemaFor(%q) = %q/%q/%q, want %q/%q/%q",
					tt.tag, got.Label, got.Icon, got.Color, tt.wantLabel, tt.wantIcon, tt.wantColor)
			}
			if len(got.Fields) == 0 {
				t.Errorf("SchemaFor(%q) has no fields", tt.tag)
			}
		})
	}
}

func TestSchemaForUnknownTagFallsBack(t *testing.T) {
	got := SchemaFor("visa")

	if got.Tag != "visa" {
		t.Errorf("Tag = %q, want passthrough %q", got.Tag, "visa")
	}
	if got.Label != "visa" {
		t.Errorf("Label = %q, want raw tag passthrough", got.Label)
	}

	other := SchemaFor(TypeOther)
	if got.Icon != other.Icon || got.Color != other.Color {
		t.Errorf("fallback icon/color = %q/%q, want the %q entry's %q/%q",
			got.Icon, got.Color, TypeOther, other.Icon, other.Color)
	}
	if len(got.Fields) != 0 {
		t.Errorf("unknown tag has fields %v, want none", got.Fields)
	}
}

func TestFieldsForOrderIsStable(t *testing.T) {
	want := []string{"airline", "from", "to", "date", "seat"}
	got := FieldsFor(TypeFlight)

	if len(got) != len(want) {
		t.Fatalf("FieldsFor(flight) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FieldsFor(flight)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEveryDeclaredFieldHasALabel(t *testing.T) {
	for _, dt := range Types() {
		for _, key := range dt.Fields {
			if LabelFor(key) == key {
				t.Errorf("field %q of %q has no label mapping", key, dt.Tag)
			}
		}
	}
}

func TestLabelForUnmappedKeyFallsBackToKey(t *testing.T) {
	if got := LabelFor("gate"); got != "gate" {
		t.Errorf("LabelFor(gate) = %q, want raw key", got)
	}
}
