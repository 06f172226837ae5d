package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/go-logr/logr"
)

// ZoneAPI is the subset of the Route 53 client the resolver needs.
type ZoneAPI interface {
	ListHostedZonesByName(ctx context.Context, params *route53.ListHostedZonesByNameInput, optFns ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error)
}

// ZoneReference is a zone name together with the hosted zone id it resolved to.
type ZoneReference struct {
	RequestedName string
	ResolvedID    string
}

// ZoneResolver maps hosted zone names to hosted zone ids.
type ZoneResolver struct {
	api ZoneAPI
	log logr.Logger
}

func NewZoneResolver(api ZoneAPI, log logr.Logger) *ZoneResolver {
	return &ZoneResolver{api: api, log: log}
}

// Resolve asks Route 53 for the first zone sorted at or after zoneName and
// accepts it only when it is exactly zoneName, with or without the trailing dot.
func (r *ZoneResolver) Resolve(ctx context.Context, zoneName string) (ZoneReference, error) {
	ref := ZoneReference{RequestedName: zoneName}
	if zoneName == "" {
		return ref, fmt.Errorf("%w: empty zone name", ErrZoneNotFound)
	}

	out, err := r.api.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName:  aws.String(zoneName),
		MaxItems: aws.Int32(1),
	})
	if err != nil {
		return ref, fmt.Errorf("%w: %s (%s)", ErrZoneNotFound, zoneName, describeAPIError(err))
	}
	if len(out.HostedZones) == 0 {
		return ref, fmt.Errorf("%w: %s", ErrZoneNotFound, zoneName)
	}

	candidate := out.HostedZones[0]
	name := aws.ToString(candidate.Name)
	if !zoneNameMatches(zoneName, name) {
		r.log.V(1).Info("closest hosted zone does not match", "requested", zoneName, "found", name)
		return ref, fmt.Errorf("%w: %s (closest match is %s)", ErrZoneNotFound, zoneName, name)
	}

	id := hostedZoneID(aws.ToString(candidate.Id))
	if id == "" {
		return ref, fmt.Errorf("%w: %s has no zone id", ErrZoneNotFound, zoneName)
	}
	ref.ResolvedID = id
	r.log.V(1).Info("hosted zone resolved", "zone", zoneName, "id", id)
	return ref, nil
}

func zoneNameMatches(requested, found string) bool {
	return found == requested || found == requested+"."
}

// hostedZoneID strips the resource prefix from ids such as /hostedzone/Z123.
func hostedZoneID(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}
