package models

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "hello", "hello"},
		{"uppercase", "Hello World", "hello-world"},
		{"underscores", "my_doc_name", "my-doc-name"},
		{"special chars stripped", "Hello, World!", "hello-world"},
		{"numbers preserved", "doc-v2.1", "doc-v21"},
		{"mixed", "My Cool_Doc (v3)", "my-cool-doc-v3"},
		{"empty string", "", ""},
		{"only special chars", "!@#$%", ""},
		{"consecutive spaces", "hello   world", "hello---world"},
		{"unicode stripped", "café résumé", "caf-rsum"},
		{"couple names", "Carla & Gilvan", "carla--gilvan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	pt := []struct {
		in   string
		want ProjectType
		ok   bool
	}{
		{"event", ProjectEvent, true},
		{"EVENT", ProjectEvent, true},
		{"portrait", ProjectPortraitSession, true},
		{"portrait-session", ProjectPortraitSession, true},
		{"corporate", "", false},
	}
	for _, tt := range pt {
		got, ok := ParseProjectType(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseProjectType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	dm := []struct {
		in   string
		want DeliveryMode
		ok   bool
	}{
		{"digital", DeliveryDigitalOnly, true},
		{"album", DeliveryDigitalPlusAlbum, true},
		{"digital_plus_album", DeliveryDigitalPlusAlbum, true},
		{"print", "", false},
	}
	for _, tt := range dm {
		got, ok := ParseDeliveryMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDeliveryMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	ch := []struct {
		in   string
		want Choice
		ok   bool
	}{
		{"", ChoiceNone, true},
		{"online", ChoiceOnline, true},
		{"in-person", ChoiceInPerson, true},
		{"presencial", ChoiceInPerson, true},
		{"phone", "", false},
	}
	for _, tt := range ch {
		got, ok := ParseChoice(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseChoice(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
