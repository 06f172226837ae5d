package provision

import "context"

// Inspect reads the record stored for hostname in a stack's hostname table
// without modifying it. Failures are reported as *StepError like Run.
func (w *Workflow) Inspect(ctx context.Context, stackName, logicalID, hostname string) (ResourceDescriptor, ConfirmationView, error) {
	if err := w.locator.VerifyStack(ctx, stackName); err != nil {
		return ResourceDescriptor{}, ConfirmationView{}, &StepError{Stage: StackVerified, Identifier: stackName, Err: err}
	}
	table, err := w.locator.Locate(ctx, stackName, logicalID)
	if err != nil {
		return ResourceDescriptor{}, ConfirmationView{}, &StepError{Stage: TableLocated, Identifier: logicalID, Err: err}
	}
	entry, err := w.gateway.ReadBack(ctx, table.PhysicalID, hostname)
	if err != nil {
		return table, ConfirmationView{}, &StepError{Stage: Verified, Identifier: hostname, Err: err}
	}
	return table, NewConfirmationView(entry), nil
}
