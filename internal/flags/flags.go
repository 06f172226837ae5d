package flags

import (
	"dario.lol/ddns/internal/awsclient"
	"dario.lol/ddns/internal/config"
	"github.com/spf13/cobra"
)

const (
	ProfileFlag        = "profile"
	RegionFlag         = "region"
	EndpointFlag       = "endpoint-url"
	VerboseFlag        = "verbose"
	HostnameFlag       = "hostname"
	HostedZoneFlag     = "hostedzone"
	ZoneFlag           = "zone"
	TTLFlag            = "ttl"
	SecretFlag         = "secret"
	TableLogicalIDFlag = "table-logical-id"
	LimitFlag          = "limit"
)

func RegisterAWS(cmd *cobra.Command) {
	cmd.PersistentFlags().String(ProfileFlag, "", "AWS shared config profile to use")
	cmd.PersistentFlags().String(RegionFlag, "", "AWS region to use")
	cmd.PersistentFlags().String(EndpointFlag, "", "Override the AWS endpoint URL (e.g. for LocalStack)")
	cmd.PersistentFlags().BoolP(VerboseFlag, "v", false, "Log each AWS call to stderr")
}

// AWSOptions merges command line flags over the saved configuration.
// Flags win; stored static keys are used only without an explicit profile.
func AWSOptions(cmd *cobra.Command, cfg config.Config) awsclient.Options {
	opts := awsclient.Options{
		Profile:  cfg.Profile,
		Region:   cfg.Region,
		Endpoint: cfg.Endpoint,
	}
	if v, _ := cmd.Flags().GetString(ProfileFlag); v != "" {
		opts.Profile = v
	}
	if v, _ := cmd.Flags().GetString(RegionFlag); v != "" {
		opts.Region = v
	}
	if v, _ := cmd.Flags().GetString(EndpointFlag); v != "" {
		opts.Endpoint = v
	}
	if cfg.HasStaticCredentials() && !cmd.Flags().Changed(ProfileFlag) {
		opts.AccessKeyID = cfg.AccessKeyID
		opts.SecretKey = string(cfg.SecretKey)
	}
	return opts
}

func Verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool(VerboseFlag)
	return v
}
