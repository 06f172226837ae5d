package provision

import (
	"context"
	"errors"
	"testing"
)

func TestWorkflow_Inspect(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()
	if _, err := f.workflow.Run(ctx, officeInput()); err != nil {
		t.Fatal(err)
	}
	f.stages = nil

	table, view, err := f.workflow.Inspect(ctx, "ddns-prod", DefaultTableLogicalID, "office")
	if err != nil {
		t.Fatalf("Inspect() = %v", err)
	}
	if table.PhysicalID != "ddns-prod-table-abc123" {
		t.Errorf("table = %q", table.PhysicalID)
	}
	want := ConfirmationView{Hostname: "office", ZoneID: "Z1234567890", TTL: 300, SharedSecret: "******"}
	if view != want {
		t.Errorf("Inspect() = %+v, want %+v", view, want)
	}
	if len(f.stages) != 0 {
		t.Errorf("Inspect() notified the observer: %v", f.stages)
	}
	if f.table.puts != 1 {
		t.Errorf("Inspect() wrote to the table")
	}

	_, _, err = f.workflow.Inspect(ctx, "ddns-prod", DefaultTableLogicalID, "nobody")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Inspect(nobody) = %v, want ErrRecordNotFound", err)
	}
	_, _, err = f.workflow.Inspect(ctx, "ddns-missing", DefaultTableLogicalID, "office")
	if !errors.Is(err, ErrStackNotFound) {
		t.Errorf("Inspect(missing stack) = %v, want ErrStackNotFound", err)
	}
}
