package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"two"}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseSteps(tt.args)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseSteps(%v) err=%v wantErr=%v", tt.args, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseSteps(%v)=%d want=%d", tt.args, got, tt.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1"); err != nil || v != 1 {
		t.Fatalf("parseVersion(1)=%d, %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if v, err := parseTarget("2"); err != nil || v != 2 {
		t.Fatalf("parseTarget(2)=%d, %v", v, err)
	}
	if _, err := parseTarget("latest"); err == nil {
		t.Fatalf("expected error for non numeric target")
	}
}
