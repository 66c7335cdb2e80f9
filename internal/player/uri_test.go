package player

import (
	"path/filepath"
	"testing"
)

func TestFileURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my alarm.mp3")

	uri, err := FileURI(path)
	if err != nil {
		t.Fatalf("FileURI() error: %v", err)
	}
	if uri[:7] != "file://" {
		t.Errorf("FileURI() = %q, want file:// prefix", uri)
	}

	got, err := PathFromURI(uri)
	if err != nil {
		t.Fatalf("PathFromURI() error: %v", err)
	}
	if got != path {
		t.Errorf("PathFromURI(%q) = %q, want %q", uri, got, path)
	}
}

func TestPathFromURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{"bare path", "/tmp/alarm.mp3", "/tmp/alarm.mp3", false},
		{"file uri", "file:///tmp/alarm.mp3", "/tmp/alarm.mp3", false},
		{"localhost", "file://localhost/tmp/alarm.mp3", "/tmp/alarm.mp3", false},
		{"escaped", "file:///tmp/my%20alarm.mp3", "/tmp/my alarm.mp3", false},
		{"remote host", "file://server/tmp/alarm.mp3", "", true},
		{"http", "http://example.com/alarm.mp3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PathFromURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PathFromURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("PathFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
			}
		})
	}
}
