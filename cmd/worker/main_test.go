package main

import "testing"

func TestParseJob(t *testing.T) {
	job, err := parseJob([]byte(`{"run_id": 42}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.RunID != 42 {
		t.Errorf("expected run id 42, got %d", job.RunID)
	}
}

func TestParseJobInvalid(t *testing.T) {
	if _, err := parseJob([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for a malformed job")
	}
}
