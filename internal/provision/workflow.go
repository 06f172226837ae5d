package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Stage is a state of the provisioning workflow. Stages only move forward;
// any failure ends in Failed.
type Stage int

const (
	Start Stage = iota
	StackVerified
	TableLocated
	ZoneResolved
	RecordAssembled
	Written
	Verified
	Done
	Failed
)

var stageNames = map[Stage]string{
	Start:           "start",
	StackVerified:   "stack-verified",
	TableLocated:    "table-located",
	ZoneResolved:    "zone-resolved",
	RecordAssembled: "record-assembled",
	Written:         "written",
	Verified:        "verified",
	Done:            "done",
	Failed:          "failed",
}

var stageSteps = map[Stage]string{
	Start:           "input validation",
	StackVerified:   "stack verification",
	TableLocated:    "table lookup",
	ZoneResolved:    "hosted zone lookup",
	RecordAssembled: "record assembly",
	Written:         "record write",
	Verified:        "record verification",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Step names the work done to reach s, used in progress and error messages.
func (s Stage) Step() string {
	if step, ok := stageSteps[s]; ok {
		return step
	}
	return s.String()
}

// Input is the fully resolved set of values for one provisioning run.
type Input struct {
	StackName      string
	TableLogicalID string
	Hostname       string
	ZoneName       string
	TTL            int
	Secret         string
}

func (in Input) Validate() error {
	var missing []string
	if in.StackName == "" {
		missing = append(missing, "stack name")
	}
	if in.TableLogicalID == "" {
		missing = append(missing, "table logical id")
	}
	if in.Hostname == "" {
		missing = append(missing, "hostname")
	}
	if in.ZoneName == "" {
		missing = append(missing, "hosted zone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	if in.TTL < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidTTL, in.TTL)
	}
	if in.Secret == "" {
		return ErrEmptySecret
	}
	return nil
}

// ConfirmationView is a read-back record safe to display: the shared secret
// is masked.
type ConfirmationView struct {
	Hostname     string `json:"hostname"`
	ZoneID       string `json:"route_53_zone_id"`
	TTL          int    `json:"route_53_record_ttl"`
	SharedSecret string `json:"shared_secret"`
}

// NewConfirmationView masks the secret of a stored entry.
func NewConfirmationView(e Entry) ConfirmationView {
	return ConfirmationView{
		Hostname:     e.Hostname,
		ZoneID:       e.ZoneID,
		TTL:          e.TTL,
		SharedSecret: Mask(e.SharedSecret),
	}
}

// Confirmation is the result of a successful run.
type Confirmation struct {
	Stack    string
	Table    ResourceDescriptor
	Zone     ZoneReference
	Record   ConfirmationView
	Duration time.Duration
}

// Workflow provisions a DDNS record into a stack's hostname table.
type Workflow struct {
	locator  *Locator
	zones    *ZoneResolver
	gateway  *Gateway
	log      logr.Logger
	observer func(Stage)
}

type WorkflowOption func(*Workflow)

// WithObserver registers fn to be called on every stage transition.
func WithObserver(fn func(Stage)) WorkflowOption {
	return func(w *Workflow) {
		w.observer = fn
	}
}

func WithWorkflowLogger(log logr.Logger) WorkflowOption {
	return func(w *Workflow) {
		w.log = log
	}
}

func NewWorkflow(locator *Locator, zones *ZoneResolver, gateway *Gateway, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		locator: locator,
		zones:   zones,
		gateway: gateway,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the workflow. The first failing step aborts the run and is
// returned as a *StepError; nothing written before it is rolled back.
func (w *Workflow) Run(ctx context.Context, in Input) (*Confirmation, error) {
	start := time.Now()
	w.enter(Start)

	if err := in.Validate(); err != nil {
		return nil, w.fail(Start, in.Hostname, err)
	}
	log := w.log.WithValues("stack", in.StackName, "hostname", in.Hostname)

	if err := w.locator.VerifyStack(ctx, in.StackName); err != nil {
		return nil, w.fail(StackVerified, in.StackName, err)
	}
	w.enter(StackVerified)

	table, err := w.locator.Locate(ctx, in.StackName, in.TableLogicalID)
	if err != nil {
		return nil, w.fail(TableLocated, in.TableLogicalID, err)
	}
	w.enter(TableLocated)
	log = log.WithValues("table", table.PhysicalID)

	zone, err := w.zones.Resolve(ctx, in.ZoneName)
	if err != nil {
		return nil, w.fail(ZoneResolved, in.ZoneName, err)
	}
	w.enter(ZoneResolved)

	payload, err := Assemble(zone.ResolvedID, in.TTL, in.Secret)
	if err != nil {
		return nil, w.fail(RecordAssembled, in.Hostname, err)
	}
	entry := Entry{Hostname: in.Hostname, Payload: payload}
	w.enter(RecordAssembled)

	if err := w.gateway.Upsert(ctx, table.PhysicalID, entry); err != nil {
		return nil, w.fail(Written, table.PhysicalID, err)
	}
	w.enter(Written)

	stored, err := w.gateway.Verify(ctx, table.PhysicalID, entry)
	if err != nil {
		return nil, w.fail(Verified, in.Hostname, err)
	}
	w.enter(Verified)

	conf := &Confirmation{
		Stack:    in.StackName,
		Table:    table,
		Zone:     zone,
		Record:   NewConfirmationView(stored),
		Duration: time.Since(start),
	}
	log.Info("record provisioned", "zoneID", zone.ResolvedID, "ttl", in.TTL)
	w.enter(Done)
	return conf, nil
}

func (w *Workflow) enter(s Stage) {
	if w.observer != nil {
		w.observer(s)
	}
}

func (w *Workflow) fail(s Stage, identifier string, err error) error {
	w.log.V(1).Info("workflow failed", "step", s.Step(), "identifier", identifier)
	w.enter(Failed)
	return &StepError{Stage: s, Identifier: identifier, Err: err}
}
