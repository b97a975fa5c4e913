package engine

import "testing"

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"worker", TypeWorker, false},
		{"Worker", TypeWorker, false},
		{"WORKER", TypeWorker, false},
		{"remote", TypeRemote, false},
		{"demo", TypeDemo, false},
		{"Demo", TypeDemo, false},
		{"argos", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Demo mode is the absence of an engine: the factory must hand back a nil
// handle without an error so the service layer selects its phrasebook.
func TestNewDemoReturnsNilHandle(t *testing.T) {
	eng, err := New(Config{Engine: TypeDemo, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if eng != nil {
		t.Errorf("New(TypeDemo) = %v, want nil handle", eng)
	}
}

func TestNewRemoteDispatch(t *testing.T) {
	eng, err := New(Config{Engine: TypeRemote, BaseURL: "http://localhost:9999", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := eng.(*RemoteClient); !ok {
		t.Errorf("New(TypeRemote) = %T, want *RemoteClient", eng)
	}
}

func TestNewUnknownEngine(t *testing.T) {
	if _, err := New(Config{Engine: Type("argos"), Logger: quietLogger()}); err == nil {
		t.Error("New should reject an unknown engine type")
	}
}
